// pkg/crypto/redact.go

package crypto

import "strings"

// Redact masks a secret for log output. The mask keeps the rune count so
// length problems stay debuggable.
func Redact(s string) string {
	if s == "" {
		return "(empty)"
	}
	return strings.Repeat("*", len([]rune(s)))
}
