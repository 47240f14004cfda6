package eos_err

import (
	"errors"
	"strings"
	"testing"

	cerr "github.com/cockroachdb/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "simple_error",
			err:  errors.New("length must be at least 1"),
		},
		{
			name: "nil_error",
			err:  nil,
		},
		{
			name: "config_error",
			err:  errors.New("output must be one of text plain json yaml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapValidationError(tt.err, "check the flags")

			if tt.err == nil {
				if wrapped != nil {
					t.Error("WrapValidationError(nil) should return nil")
				}
				return
			}

			if wrapped == nil {
				t.Fatal("WrapValidationError should not return nil for non-nil error")
			}

			if !errors.Is(wrapped, tt.err) {
				t.Error("wrapped error should preserve the original error")
			}

			if wrapped.Error() != tt.err.Error() {
				t.Errorf("message changed: %q", wrapped.Error())
			}

			if hints := cerr.GetAllHints(wrapped); len(hints) != 1 || hints[0] != "check the flags" {
				t.Errorf("unexpected hints %v", hints)
			}
		})
	}
}

func TestWrapErrors_Unwrapping(t *testing.T) {
	t.Parallel()
	originalErr := errors.New("original validation error")
	wrapped := WrapValidationError(originalErr, "check the flags")

	unwrapped := errors.Unwrap(wrapped)
	for unwrapped != nil && unwrapped != originalErr {
		unwrapped = errors.Unwrap(unwrapped)
	}

	if unwrapped != originalErr {
		t.Error("should be able to unwrap to the original error")
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q", got)
	}

	plain := errors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}

	hinted := cerr.WithHint(errors.New("length too short"), "increase the length to 4")
	got := UserMessage(hinted)
	if !strings.HasPrefix(got, "length too short") || !strings.Contains(got, "Hint: increase the length to 4") {
		t.Errorf("UserMessage(hinted) = %q", got)
	}
}
