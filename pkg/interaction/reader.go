// pkg/interaction/reader.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ErrInputClosed is returned when the input ends before a question is answered.
var ErrInputClosed = cerr.New("input closed before an answer was given")

// ReadLine writes label to w and returns one trimmed line from reader.
// Prompts go to w (normally stderr) so that stdout stays reserved for results.
func ReadLine(ctx context.Context, reader *bufio.Reader, w io.Writer, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	logger := otelzap.Ctx(ctx)
	logger.Debug("Prompting user for input", zap.String("label", label))

	_, _ = fmt.Fprint(w, label+": ")

	text, err := reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			logger.Error("Failed to read user input", zap.Error(err))
			return "", cerr.Wrap(err, "read input")
		}
		if text == "" {
			_, _ = fmt.Fprintln(w)
			return "", ErrInputClosed
		}
	}

	value := strings.TrimSpace(text)
	logger.Debug("User input received", zap.String("label", label), zap.Int("length", len(value)))
	return value, nil
}
