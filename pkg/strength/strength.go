// pkg/strength/strength.go

// Package strength classifies passwords with a coarse length and
// character-variety heuristic. It is not an entropy estimate.
package strength

import (
	"unicode"
	"unicode/utf8"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/charset"
)

// Length thresholds that each add one point.
const (
	MinLength    = 8
	StrongLength = 12
)

type Level int

const (
	Weak Level = iota
	Moderate
	Strong
	// Unknown is returned only for scores outside the range Score can
	// produce.
	Unknown
)

func (l Level) String() string {
	switch l {
	case Weak:
		return "Weak"
	case Moderate:
		return "Moderate"
	case Strong:
		return "Strong"
	default:
		return "Unknown"
	}
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Assessment is the breakdown behind a classification.
type Assessment struct {
	Level  Level              `json:"level" yaml:"level"`
	Score  int                `json:"score" yaml:"score"`
	Length int                `json:"length" yaml:"length"`
	Types  []charset.Category `json:"types" yaml:"types"`
}

// Assess scores pw and reports which character types it contains. Length is
// counted in runes.
func Assess(pw string) Assessment {
	length := utf8.RuneCountInString(pw)
	types := Types(pw)

	score := 0
	if length >= MinLength {
		score++
	}
	if length >= StrongLength {
		score++
	}
	// negative when no recognised type is present
	score += len(types) - 1

	return Assessment{
		Level:  levelFor(score),
		Score:  score,
		Length: length,
		Types:  types,
	}
}

// Score returns the integer heuristic score of pw, between -1 and 5.
func Score(pw string) int {
	return Assess(pw).Score
}

// Classify maps pw to a Level. It never fails; an empty password is Weak.
func Classify(pw string) Level {
	return Assess(pw).Level
}

// Types lists, in category declaration order, which character types pw uses.
// Letters and digits are recognised across Unicode; symbols only from the
// fixed symbol set.
func Types(pw string) []charset.Category {
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case isSymbol(r):
			symbol = true
		}
	}

	var out []charset.Category
	if lower {
		out = append(out, charset.Lowercase)
	}
	if upper {
		out = append(out, charset.Uppercase)
	}
	if digit {
		out = append(out, charset.Digit)
	}
	if symbol {
		out = append(out, charset.Symbol)
	}
	return out
}

func isSymbol(r rune) bool {
	c, ok := charset.Classify(r)
	return ok && c == charset.Symbol
}

func levelFor(score int) Level {
	switch {
	case score <= 1:
		return Weak
	case score == 2:
		return Moderate
	case score >= 3:
		return Strong
	default:
		return Unknown
	}
}
