package eos_io

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/crypto"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// MaxInputLength defines the maximum accepted length of a secret read from input.
const MaxInputLength = 4096

// ErrInputTooLong is returned when a line exceeds MaxInputLength bytes.
var ErrInputTooLong = cerr.Newf("input longer than %d bytes", MaxInputLength)

// ReadSecret reads one secret line. When in is a terminal the input is not
// echoed and the prompt is written to prompt; otherwise a single line is read
// from in and no prompt is shown. The trailing line ending is removed, other
// whitespace is kept.
func ReadSecret(ctx context.Context, in io.Reader, prompt io.Writer, label string) (string, error) {
	log := otelzap.Ctx(ctx)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		log.Debug("Reading secret from terminal", zap.String("label", label))
		fmt.Fprint(prompt, label+": ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", cerr.Wrap(err, "read secret from terminal")
		}
		if len(b) > MaxInputLength {
			return "", ErrInputTooLong
		}
		log.Debug("Secret read", zap.String("value", crypto.Redact(string(b))))
		return string(b), nil
	}

	log.Debug("Reading secret from piped input", zap.String("label", label))
	// a full-length line plus CRLF fits; anything longer is cut off and rejected
	secret, err := readLine(bufio.NewReader(io.LimitReader(in, MaxInputLength+2)))
	if err != nil {
		return "", err
	}
	log.Debug("Secret read", zap.String("value", crypto.Redact(secret)))
	return secret, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", cerr.Wrap(err, "read secret")
	}
	if err == io.EOF && line == "" {
		return "", cerr.Wrap(io.ErrUnexpectedEOF, "no input")
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if len(line) > MaxInputLength {
		return "", ErrInputTooLong
	}
	return line, nil
}
