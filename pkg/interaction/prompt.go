// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// PromptInt asks for an integer in [lo, hi]. A blank answer keeps def.
// Invalid answers are re-asked up to maxAttempts times.
func PromptInt(ctx context.Context, reader *bufio.Reader, w io.Writer, label string, def, lo, hi int) (int, error) {
	logger := otelzap.Ctx(ctx)
	prompt := fmt.Sprintf("%s [%d]", label, def)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		input, err := ReadLine(ctx, reader, w, prompt)
		if err != nil {
			return def, err
		}
		if input == "" {
			logger.Debug("Default applied", zap.String("label", label), zap.Int("default", def))
			return def, nil
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		logger.Warn("Invalid number entered", zap.String("label", label), zap.Int("attempt", attempt))
		_, _ = fmt.Fprintf(w, "Please enter a whole number between %d and %d.\n", lo, hi)
	}
	return def, cerr.Newf("no valid answer for %q after %d attempts", label, maxAttempts)
}

// PromptYesNo asks a yes/no question. A blank answer keeps def.
func PromptYesNo(ctx context.Context, reader *bufio.Reader, w io.Writer, label string, def bool) (bool, error) {
	logger := otelzap.Ctx(ctx)
	defPrompt := DefaultYesPrompt
	if !def {
		defPrompt = DefaultNoPrompt
	}
	prompt := fmt.Sprintf("%s [%s]", label, defPrompt)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		input, err := ReadLine(ctx, reader, w, prompt)
		if err != nil {
			return def, err
		}
		if input == "" {
			logger.Debug("Default applied", zap.String("label", label), zap.Bool("default", def))
			return def, nil
		}
		if answer, ok := NormalizeYesNoInput(input); ok {
			return answer, nil
		}
		logger.Warn("Invalid yes/no answer", zap.String("label", label), zap.Int("attempt", attempt))
		_, _ = fmt.Fprintln(w, "Please answer y or n.")
	}
	return def, cerr.Newf("no valid answer for %q after %d attempts", label, maxAttempts)
}

// NormalizeYesNoInput reports whether input is an affirmative answer and
// whether it was recognised at all.
func NormalizeYesNoInput(input string) (answer bool, ok bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case YesShort, YesLong:
		return true, true
	case NoShort, NoLong:
		return false, true
	}
	return false, false
}
