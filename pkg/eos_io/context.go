// pkg/eos_io/context.go

package eos_io

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	RunID      string
	Command    string
	Component  string
	Attributes map[string]string
}

// NewContext sets up tracing and a logger scoped to one command run.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	ctx, span := telemetry.Start(parent, "cmd."+cmdName)
	runID := uuid.NewString()
	span.SetAttributes(attribute.String("run_id", runID))

	comp, _ := resolveCallContext(2)
	log := logger.L().With(
		zap.String("component", comp),
		zap.String("run_id", runID),
	).Named(cmdName)

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        log,
		Timestamp:  time.Now(),
		RunID:      runID,
		Component:  comp,
		Command:    cmdName,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts them to an internal
// error. It must be deferred directly.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = eos_err.NewInternalError("unexpected failure", cerr.AssertionFailedf("panic: %v", r))
		rc.Log.Error("Panic recovered", zap.Any("panic", r))
	}
}

// End logs outcome, records span attributes, and ends the span.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)

	switch {
	case err == nil:
		rc.Log.Debug("Command completed", zap.Duration("duration", duration))
	case eos_err.IsExpectedUserError(err):
		rc.Log.Info("Command rejected input", zap.Duration("duration", duration), zap.Error(err))
	default:
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(err))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("version", shared.Version),
		attribute.String("error_type", classifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)
	if err != nil {
		rc.Span.SetStatus(codes.Error, classifyError(err))
	}
}

// ––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Helper functions
// ––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

func resolveCallContext(skip int) (component, action string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", "unknown"
	}
	parts := strings.Split(file, "/")
	if len(parts) >= 2 {
		component = parts[len(parts)-2]
	} else {
		component = strings.TrimSuffix(parts[0], ".go")
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields := strings.Split(fn.Name(), ".")
		action = fields[len(fields)-1]
	} else {
		action = "unknown"
	}
	return
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	return eos_err.CategoryOf(err).String()
}
