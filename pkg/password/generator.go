// pkg/password/generator.go

// Package password generates random passwords from a selection of character
// categories, guaranteeing every selected category appears at least once.
package password

import (
	"io"
	"strings"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/charset"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/crypto"
	cerr "github.com/cockroachdb/errors"
)

// maxRepairPasses bounds the verify-and-retry loop of inclusion repair.
const maxRepairPasses = 64

// Config describes one generation request.
type Config struct {
	Length int
	charset.Selection
}

// Required is the number of categories that must appear in the output.
func (c Config) Required() int {
	return c.Enabled.Len()
}

// Generator draws passwords from a cryptographically secure reader. It holds
// no other state and may be shared between goroutines.
type Generator struct {
	random io.Reader
}

type Option func(*Generator)

// WithRandom replaces the entropy source. r must be a CSPRNG; nil keeps the
// default.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.random = r
		}
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{random: crypto.Reader}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = New()

// Generate creates a password with the default crypto/rand backed generator.
func Generate(cfg Config) (string, error) {
	return defaultGenerator.Generate(cfg)
}

// Generate creates one password for cfg.
func (g *Generator) Generate(cfg Config) (string, error) {
	// ASSESS - make sure the request can be satisfied at all
	alphabet := cfg.Alphabet()
	if alphabet == "" {
		return "", newConfigurationError(ErrEmptyAlphabet, cfg)
	}
	if cfg.Length < cfg.Required() {
		return "", newConfigurationError(ErrLengthTooShort, cfg)
	}

	// INTERVENE - draw, repair, shuffle
	draft, err := crypto.RandomString(g.random, alphabet, cfg.Length)
	if err != nil {
		return "", cerr.Wrap(err, "draw characters")
	}
	if err := g.ensureInclusion(draft, cfg.SubAlphabets()); err != nil {
		return "", err
	}
	if err := crypto.Shuffle(g.random, draft); err != nil {
		return "", cerr.Wrap(err, "shuffle")
	}

	// EVALUATE - the repair loop already verified inclusion
	return string(draft), nil
}

// GenerateN creates n independent passwords for cfg.
func (g *Generator) GenerateN(cfg Config, n int) ([]string, error) {
	if n < 1 {
		return nil, cerr.Newf("password count must be at least 1, got %d", n)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		pw, err := g.Generate(cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	return out, nil
}

// ensureInclusion overwrites a random position with a random member of every
// usable sub-alphabet that is missing from draft. A later repair can clobber
// an earlier one, so passes repeat until nothing is missing.
func (g *Generator) ensureInclusion(draft []byte, subs []charset.SubAlphabet) error {
	for pass := 0; pass < maxRepairPasses; pass++ {
		repaired := false
		for _, sub := range subs {
			if !sub.Usable() || containsAny(draft, sub.Chars) {
				continue
			}
			idx, err := crypto.RandomIndex(g.random, len(draft))
			if err != nil {
				return cerr.Wrap(err, "pick repair position")
			}
			c, err := crypto.RandomChar(g.random, sub.Chars)
			if err != nil {
				return cerr.Wrapf(err, "pick %s character", sub.Category)
			}
			draft[idx] = c
			repaired = true
		}
		if !repaired {
			return nil
		}
	}
	if missing := missingCategories(draft, subs); len(missing) > 0 {
		return cerr.WithDetailf(cerr.WithStack(ErrInclusionFailed), "missing: %v", missing)
	}
	return nil
}

func containsAny(b []byte, chars string) bool {
	for _, c := range b {
		if strings.IndexByte(chars, c) >= 0 {
			return true
		}
	}
	return false
}

func missingCategories(b []byte, subs []charset.SubAlphabet) []charset.Category {
	var out []charset.Category
	for _, sub := range subs {
		if sub.Usable() && !containsAny(b, sub.Chars) {
			out = append(out, sub.Category)
		}
	}
	return out
}
