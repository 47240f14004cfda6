// pkg/telemetry/telemetry.go

package telemetry

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	mu       sync.RWMutex
	tracer   trace.Tracer = noop.NewTracerProvider().Tracer("passgen")
	shutdown              = func(context.Context) error { return nil }
)

// Options controls span export. Spans never carry password material.
type Options struct {
	Enabled bool
	// Path is the JSONL span file. Empty uses DefaultPath().
	Path string
	// Writer overrides Path; used by tests.
	Writer io.Writer
}

// DefaultPath is ~/.passgen/telemetry.jsonl.
func DefaultPath() string {
	return xdg.DotDirPath(shared.AppName, "telemetry.jsonl")
}

// Init configures OpenTelemetry; call this early in main(). With telemetry
// disabled a noop provider is installed.
func Init(service string, opts Options) error {
	if !opts.Enabled {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		setTracer(tp.Tracer(service), func(context.Context) error { return nil })
		return nil
	}

	w := opts.Writer
	var file *os.File
	if w == nil {
		path := opts.Path
		if path == "" {
			path = DefaultPath()
		}
		f, err := xdg.OpenAppend(path)
		if err != nil {
			return cerr.Wrap(err, "failed to open telemetry file")
		}
		file, w = f, f
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithoutTimestamps(), // Spans already have timestamps
	)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", service),
			attribute.String("host.name", hostname()),
		)),
	)

	otel.SetTracerProvider(tp)
	setTracer(tp.Tracer(service), func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if file != nil {
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
		}
		return err
	})
	return nil
}

// Shutdown flushes and closes the exporter installed by Init.
func Shutdown(ctx context.Context) error {
	mu.RLock()
	fn := shutdown
	mu.RUnlock()
	return fn(ctx)
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	mu.RLock()
	t := tracer
	mu.RUnlock()
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

func setTracer(t trace.Tracer, fn func(context.Context) error) {
	mu.Lock()
	tracer, shutdown = t, fn
	mu.Unlock()
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
