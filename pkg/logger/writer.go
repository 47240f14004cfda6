// pkg/logger/writer.go

package logger

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/xdg"
	"go.uber.org/zap/zapcore"
)

// GetLogFileWriter opens path for appending, creating the directory (0700)
// and file (0600) when missing.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	file, err := xdg.OpenAppend(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return zapcore.AddSync(file), nil
}
