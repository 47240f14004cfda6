// pkg/output/render.go

package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/charset"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/strength"
	"github.com/charmbracelet/lipgloss"
	cerr "github.com/cockroachdb/errors"
	"golang.org/x/term"
)

type Format string

const (
	FormatText  Format = shared.OutputText
	FormatPlain Format = shared.OutputPlain
	FormatJSON  Format = shared.OutputJSON
	FormatYAML  Format = shared.OutputYAML
)

// ParseFormat accepts any of shared.OutputFormats, case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	for _, known := range shared.OutputFormats {
		if f == known {
			return Format(f), nil
		}
	}
	return "", cerr.WithHint(
		cerr.Newf("unknown output format %q", s),
		"use one of: "+strings.Join(shared.OutputFormats, ", "),
	)
}

// Result is one generated password as rendered. Strength and Score are nil
// when strength reporting is off.
type Result struct {
	Password string          `json:"password" yaml:"password"`
	Strength *strength.Level `json:"strength,omitempty" yaml:"strength,omitempty"`
	Score    *int            `json:"score,omitempty" yaml:"score,omitempty"`
	Length   int             `json:"length" yaml:"length"`
}

func NewResult(pw string, withStrength bool) Result {
	r := Result{Password: pw, Length: utf8.RuneCountInString(pw)}
	if withStrength {
		level, score := strength.Classify(pw), strength.Score(pw)
		r.Strength = &level
		r.Score = &score
	}
	return r
}

// ColorEnabled reports whether w is a terminal that should get colour.
// NO_COLOR disables colour regardless.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer writes results to one writer in one format.
type Printer struct {
	w      io.Writer
	format Format
	levels map[strength.Level]lipgloss.Style
}

// NewPrinter returns a Printer. With color false, strength labels are
// written without escape sequences.
func NewPrinter(w io.Writer, format Format, color bool) *Printer {
	p := &Printer{w: w, format: format}
	if color {
		r := lipgloss.NewRenderer(w)
		p.levels = map[strength.Level]lipgloss.Style{
			strength.Weak:     r.NewStyle().Foreground(lipgloss.Color("#ff0000")).Bold(true),
			strength.Moderate: r.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true),
			strength.Strong:   r.NewStyle().Foreground(lipgloss.Color("#00ff00")).Bold(true),
		}
	}
	return p
}

func (p *Printer) level(l strength.Level) string {
	if style, ok := p.levels[l]; ok {
		return style.Render(l.String())
	}
	return l.String()
}

// Passwords renders generated passwords.
func (p *Printer) Passwords(results []Result) error {
	switch p.format {
	case FormatJSON:
		return JSONTo(p.w, results)
	case FormatYAML:
		return YAMLTo(p.w, results)
	case FormatPlain:
		for _, r := range results {
			if _, err := fmt.Fprintln(p.w, r.Password); err != nil {
				return err
			}
		}
		return nil
	case FormatText:
		if len(results) == 1 {
			return p.single(results[0])
		}
		return p.table(results)
	}
	return cerr.AssertionFailedf("unhandled output format %q", p.format)
}

func (p *Printer) single(r Result) error {
	if _, err := fmt.Fprintln(p.w, r.Password); err != nil {
		return err
	}
	return p.strengthLine(r)
}

// Copied reports a password that went to the clipboard. The password itself
// is not written.
func (p *Printer) Copied(r Result) error {
	if _, err := fmt.Fprintf(p.w, "Password copied to clipboard (%d characters)\n", r.Length); err != nil {
		return err
	}
	return p.strengthLine(r)
}

func (p *Printer) strengthLine(r Result) error {
	if r.Strength == nil {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "Strength: %s (score %d)\n", p.level(*r.Strength), *r.Score)
	return err
}

func (p *Printer) table(results []Result) error {
	withStrength := len(results) > 0 && results[0].Strength != nil
	t := NewTableTo(p.w)
	if withStrength {
		t.WithHeaders("#", "PASSWORD", "SCORE", "STRENGTH")
	} else {
		t.WithHeaders("#", "PASSWORD")
	}
	for i, r := range results {
		n := strconv.Itoa(i + 1)
		if withStrength && r.Strength != nil {
			t.AddRow(n, r.Password, strconv.Itoa(*r.Score), p.level(*r.Strength))
		} else {
			t.AddRow(n, r.Password)
		}
	}
	return t.Render()
}

// Assessment renders a strength classification. The classified password is
// never part of the output.
func (p *Printer) Assessment(a strength.Assessment) error {
	if a.Types == nil {
		a.Types = []charset.Category{}
	}
	switch p.format {
	case FormatJSON:
		return JSONTo(p.w, a)
	case FormatYAML:
		return YAMLTo(p.w, a)
	case FormatPlain:
		_, err := fmt.Fprintln(p.w, a.Level)
		return err
	case FormatText:
		types := "none"
		if len(a.Types) > 0 {
			names := make([]string, len(a.Types))
			for i, c := range a.Types {
				names[i] = c.String()
			}
			types = strings.Join(names, ", ")
		}
		_, err := fmt.Fprintf(p.w, "Strength: %s (score %d, length %d, types: %s)\n",
			p.level(a.Level), a.Score, a.Length, types)
		return err
	}
	return cerr.AssertionFailedf("unhandled output format %q", p.format)
}
