// pkg/charset/builder.go

package charset

import "strings"

// Selection is the part of a generation request that decides which
// characters may appear.
type Selection struct {
	Enabled          Set
	ExcludeAmbiguous bool
}

// SubAlphabet is the filtered alphabet of a single enabled category.
type SubAlphabet struct {
	Category Category
	Chars    string
}

// Usable reports whether the sub-alphabet has anything to draw from. A
// category whose characters were all filtered out cannot be repaired into a
// password and must be skipped.
func (s SubAlphabet) Usable() bool {
	return s.Chars != ""
}

// Contains reports whether b belongs to the sub-alphabet.
func (s SubAlphabet) Contains(b byte) bool {
	return strings.IndexByte(s.Chars, b) >= 0
}

// Alphabet concatenates the enabled reference alphabets in declaration order,
// dropping ambiguous characters when requested. The result is empty when no
// category is enabled.
func (sel Selection) Alphabet() string {
	var sb strings.Builder
	for _, sub := range sel.SubAlphabets() {
		sb.WriteString(sub.Chars)
	}
	return sb.String()
}

// SubAlphabets returns one entry per enabled category, in declaration order,
// filtered the same way as Alphabet. Entries may be empty.
func (sel Selection) SubAlphabets() []SubAlphabet {
	out := make([]SubAlphabet, 0, sel.Enabled.Len())
	for _, c := range sel.Enabled.Categories() {
		chars := c.Reference()
		if sel.ExcludeAmbiguous {
			chars = stripAmbiguous(chars)
		}
		out = append(out, SubAlphabet{Category: c, Chars: chars})
	}
	return out
}

func stripAmbiguous(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !IsAmbiguous(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
