// pkg/password/check.go

package password

import (
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// Check verifies that pw could have come from cfg: it has the configured
// length, only uses characters of the alphabet, and contains every category
// whose filtered sub-alphabet is non-empty. The password itself never appears
// in the returned error.
func Check(pw string, cfg Config) error {
	if len(pw) != cfg.Length {
		return cerr.Newf("password has length %d, want %d", len(pw), cfg.Length)
	}
	alphabet := cfg.Alphabet()
	for i := 0; i < len(pw); i++ {
		if strings.IndexByte(alphabet, pw[i]) < 0 {
			return cerr.Newf("character at position %d is outside the alphabet", i)
		}
	}
	if missing := missingCategories([]byte(pw), cfg.SubAlphabets()); len(missing) > 0 {
		return cerr.Wrapf(ErrInclusionFailed, "missing %v", missing)
	}
	return nil
}
