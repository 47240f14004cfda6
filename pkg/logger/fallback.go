/* pkg/logger/fallback.go */

package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFallbackLogger logs to stderr at the $LOG_LEVEL level.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		ResolveLevel(""),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitFallback installs the fallback logger globally and returns it.
func InitFallback() *zap.Logger {
	fallback := NewFallbackLogger()
	SetLogger(fallback)
	fallback.Debug("Logger fallback initialized")
	return fallback
}
