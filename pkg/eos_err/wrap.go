// pkg/eos_err/wrap.go

package eos_err

import (
	cerr "github.com/cockroachdb/errors"
)

// WrapValidationError attaches a stack and a remediation hint to err. A nil
// err stays nil.
func WrapValidationError(err error, hint string) error {
	if err == nil {
		return nil
	}
	return cerr.WithHint(cerr.WithStack(err), hint)
}

// UserMessage renders err for a terminal: the message followed by any hints
// attached with cockroachdb/errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if hint := cerr.FlattenHints(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}
