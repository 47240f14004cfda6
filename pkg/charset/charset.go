// pkg/charset/charset.go

// Package charset holds the reference character categories used for password
// generation and builds the sampling alphabet from a selection of them.
package charset

import (
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// Reference alphabets. These never change at runtime.
const (
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars     = "0123456789"
	SymbolChars    = "!@#$%^&*()-_=+[]{}|;:,.<>?/~`"

	// Ambiguous lists the visually confusable characters removed when
	// Selection.ExcludeAmbiguous is set.
	Ambiguous = "Il1O0"
)

// Category is one of the fixed character classes.
type Category int

const (
	Lowercase Category = iota
	Uppercase
	Digit
	Symbol
)

// categories is declaration order; alphabets and repairs follow it.
var categories = [...]Category{Lowercase, Uppercase, Digit, Symbol}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// Reference returns the unfiltered alphabet of the category.
func (c Category) Reference() string {
	switch c {
	case Lowercase:
		return LowercaseChars
	case Uppercase:
		return UppercaseChars
	case Digit:
		return DigitChars
	case Symbol:
		return SymbolChars
	default:
		return ""
	}
}

func (c Category) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digit:
		return "digits"
	case Symbol:
		return "symbols"
	default:
		return "unknown"
	}
}

// MarshalText renders the category by name for JSON/YAML output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCategory accepts the canonical names and a few short aliases.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowercase", "lower", "l":
		return Lowercase, nil
	case "uppercase", "upper", "u":
		return Uppercase, nil
	case "digits", "digit", "numbers", "d":
		return Digit, nil
	case "symbols", "symbol", "s":
		return Symbol, nil
	}
	return 0, cerr.WithHint(
		cerr.Newf("unknown character category %q", s),
		"valid categories are lowercase, uppercase, digits, symbols",
	)
}

// ParseSet parses a list of category names into a Set. Duplicates are allowed.
func ParseSet(names []string) (Set, error) {
	var set Set
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseCategory(name)
		if err != nil {
			return 0, err
		}
		set = set.Add(c)
	}
	return set, nil
}

// Set is a bitmask of enabled categories. The zero value is the empty set.
type Set uint8

// All returns the set with every category enabled.
func All() Set {
	var s Set
	for _, c := range categories {
		s = s.Add(c)
	}
	return s
}

// SetOf builds a set from the given categories.
func SetOf(cs ...Category) Set {
	var s Set
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}

func (s Set) Add(c Category) Set {
	if c < Lowercase || c > Symbol {
		return s
	}
	return s | 1<<uint(c)
}

func (s Set) Remove(c Category) Set {
	if c < Lowercase || c > Symbol {
		return s
	}
	return s &^ (1 << uint(c))
}

func (s Set) Has(c Category) bool {
	if c < Lowercase || c > Symbol {
		return false
	}
	return s&(1<<uint(c)) != 0
}

// Len is the number of enabled categories.
func (s Set) Len() int {
	n := 0
	for _, c := range categories {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Categories lists the enabled categories in declaration order.
func (s Set) Categories() []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names lists the enabled category names in declaration order.
func (s Set) Names() []string {
	cs := s.Categories()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func (s Set) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Names(), ",")
}

// IsAmbiguous reports whether b is one of the visually confusable characters.
func IsAmbiguous(b byte) bool {
	return strings.IndexByte(Ambiguous, b) >= 0
}

// Classify reports which reference alphabet r belongs to.
func Classify(r rune) (Category, bool) {
	if r > 0x7f {
		return 0, false
	}
	for _, c := range categories {
		if strings.ContainsRune(c.Reference(), r) {
			return c, true
		}
	}
	return 0, false
}
