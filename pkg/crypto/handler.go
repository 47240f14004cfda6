/* pkg/crypto/handler.go */

package crypto

import (
	"crypto/rand"
	"io"
	"math/big"

	cerr "github.com/cockroachdb/errors"
)

// ErrEmptyCharset is returned when asked to draw from nothing.
var ErrEmptyCharset = cerr.New("cannot draw from an empty charset")

// Reader is the default entropy source. It must stay a CSPRNG.
var Reader io.Reader = rand.Reader

// ----------------------------
// 🔐 Uniform draws
// ----------------------------

// RandomIndex returns a uniform int in [0, n) read from r.
func RandomIndex(r io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, cerr.Newf("random index bound must be positive, got %d", n)
	}
	if r == nil {
		r = Reader
	}
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return 0, cerr.Wrap(err, "read entropy")
	}
	return int(v.Int64()), nil
}

// RandomChar returns a uniformly chosen byte of charset.
func RandomChar(r io.Reader, charset string) (byte, error) {
	if charset == "" {
		return 0, ErrEmptyCharset
	}
	i, err := RandomIndex(r, len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

// RandomString draws n bytes independently from charset.
func RandomString(r io.Reader, charset string, n int) ([]byte, error) {
	if charset == "" {
		return nil, ErrEmptyCharset
	}
	out := make([]byte, n)
	for i := range out {
		c, err := RandomChar(r, charset)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// ----------------------------
// 🔀 Shuffling
// ----------------------------

// Shuffle permutes b in place with a Fisher-Yates shuffle driven by r.
func Shuffle(r io.Reader, b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := RandomIndex(r, i+1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
