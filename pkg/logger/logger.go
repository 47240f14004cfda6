// pkg/logger/logger.go

// Package logger configures the process-wide zap logger. Console output goes
// to stderr so that stdout carries only generated results.
package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// Options selects level and optional JSON log file.
type Options struct {
	// Level is one of DEBUG, INFO, WARN, ERROR (case-insensitive). Empty
	// falls back to $LOG_LEVEL, then DefaultLevel.
	Level string
	// File, when set, receives JSON log lines in addition to the console.
	File string
}

// DefaultLevel keeps a normal run quiet.
const DefaultLevel = zapcore.WarnLevel

// Initialize builds the logger from opts and installs it as the zap and
// otelzap global. A log file that cannot be opened is reported on stderr and
// skipped.
func Initialize(opts Options) *zap.Logger {
	level := ResolveLevel(opts.Level)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), level),
	}

	if opts.File != "" {
		writer, err := GetLogFileWriter(opts.File)
		if err != nil {
			fmt.Fprintln(os.Stderr, "⚠️  Could not write to log file, logging to console only:", err)
		} else {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(DefaultJSONEncoderConfig()), writer, level))
		}
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SetLogger(l)
	l.Debug("Logger initialized",
		zap.String("log_level", level.String()),
		zap.String("log_file", opts.File),
	)
	return l
}

// SetLogger installs l as the global logger for zap, otelzap and L().
func SetLogger(l *zap.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l, otelzap.WithMinLevel(zapcore.DebugLevel)))
}

// L returns the global logger, initialising a fallback when none is set.
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		return InitFallback()
	}
	return l
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		return nil
	}
	return l.Sync()
}
