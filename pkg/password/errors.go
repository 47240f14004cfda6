// pkg/password/errors.go

package password

import (
	"errors"
	"fmt"

	cerr "github.com/cockroachdb/errors"
)

var (
	// ErrEmptyAlphabet means no category was enabled, so there is nothing to
	// draw from.
	ErrEmptyAlphabet = errors.New("choose at least one character type")

	// ErrLengthTooShort means the requested length cannot hold one character
	// of every enabled category.
	ErrLengthTooShort = errors.New("length too short for the selected character types")

	// ErrInclusionFailed is returned when repeated repair passes still leave a
	// required category unrepresented.
	ErrInclusionFailed = errors.New("could not include every selected character type")
)

// ConfigurationError reports a request that can never be satisfied as given.
// Reason is ErrEmptyAlphabet or ErrLengthTooShort.
type ConfigurationError struct {
	Reason   error
	Length   int
	Required int
}

func (e *ConfigurationError) Error() string {
	if errors.Is(e.Reason, ErrLengthTooShort) {
		return fmt.Sprintf("length must be at least %d to include each selected type (got %d)", e.Required, e.Length)
	}
	return e.Reason.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Reason
}

func newConfigurationError(reason error, cfg Config) error {
	err := &ConfigurationError{Reason: reason, Length: cfg.Length, Required: cfg.Required()}
	hint := "enable lowercase, uppercase, digits or symbols"
	if errors.Is(reason, ErrLengthTooShort) {
		hint = fmt.Sprintf("increase the length to %d or disable some character types", cfg.Required())
	}
	return cerr.WithHint(cerr.WithStack(err), hint)
}
