package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/strength"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "text", want: FormatText},
		{in: " JSON ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "plain", want: FormatPlain},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewResult(t *testing.T) {
	r := NewResult("Abcdefgh1!", true)
	require.NotNil(t, r.Strength)
	require.NotNil(t, r.Score)
	assert.Equal(t, strength.Strong, *r.Strength)
	assert.Equal(t, 4, *r.Score)
	assert.Equal(t, 10, r.Length)

	r = NewResult("abc", false)
	assert.Nil(t, r.Strength)
	assert.Nil(t, r.Score)
	assert.Equal(t, 3, r.Length)
}

func TestPasswordsJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON, false)
	require.NoError(t, p.Passwords([]Result{NewResult("a<b>&c", true), NewResult("xyz", false)}))

	assert.Contains(t, buf.String(), `"password": "a<b>&c"`)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Weak", got[0]["strength"])
	assert.EqualValues(t, 1, got[0]["score"])
	assert.EqualValues(t, 6, got[0]["length"])
	assert.NotContains(t, got[1], "strength")
	assert.NotContains(t, got[1], "score")
}

func TestPasswordsYAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatYAML, false)
	require.NoError(t, p.Passwords([]Result{NewResult("Abcdefgh", true)}))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Abcdefgh", got[0]["password"])
	assert.Equal(t, "Moderate", got[0]["strength"])
	assert.Equal(t, 2, got[0]["score"])
	assert.Equal(t, 8, got[0]["length"])
}

func TestPasswordsPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatPlain, false)
	require.NoError(t, p.Passwords([]Result{NewResult("one", true), NewResult("two", true)}))
	assert.Equal(t, "one\ntwo\n", buf.String())
}

func TestPasswordsTextSingle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText, false)
	require.NoError(t, p.Passwords([]Result{NewResult("Abcdefgh1!", true)}))
	assert.Equal(t, "Abcdefgh1!\nStrength: Strong (score 4)\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Passwords([]Result{NewResult("Abcdefgh1!", false)}))
	assert.Equal(t, "Abcdefgh1!\n", buf.String())
}

func TestPasswordsTextTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText, false)
	require.NoError(t, p.Passwords([]Result{NewResult("abcdefgh", true), NewResult("Abcdefgh1!", true)}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "#  PASSWORD    SCORE  STRENGTH", lines[0])
	assert.Equal(t, "-  --------    -----  --------", lines[1])
	assert.Equal(t, "1  abcdefgh    1      Weak", lines[2])
	assert.Equal(t, "2  Abcdefgh1!  4      Strong", lines[3])

	buf.Reset()
	require.NoError(t, p.Passwords([]Result{NewResult("aa", false), NewResult("bb", false)}))
	assert.Equal(t, "#  PASSWORD\n-  --------\n1  aa\n2  bb\n", buf.String())
}

func TestAssessment(t *testing.T) {
	a := strength.Assess("Abcdefgh1!")

	tests := []struct {
		format Format
		want   string
	}{
		{FormatPlain, "Strong\n"},
		{FormatText, "Strength: Strong (score 4, length 10, types: lowercase, uppercase, digits, symbols)\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewPrinter(&buf, tt.format, false).Assessment(a))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestAssessmentStructured(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatJSON, false).Assessment(strength.Assess("")))
	assert.JSONEq(t, `{"level":"Weak","score":-1,"length":0,"types":[]}`, buf.String())

	buf.Reset()
	require.NoError(t, NewPrinter(&buf, FormatYAML, false).Assessment(strength.Assess("Ab1")))
	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Moderate", got["level"])
	assert.Equal(t, []interface{}{"lowercase", "uppercase", "digits"}, got["types"])

	buf.Reset()
	require.NoError(t, NewPrinter(&buf, FormatText, false).Assessment(strength.Assess("")))
	assert.Contains(t, buf.String(), "types: none")
}

func TestAssessmentNeverIncludesPassword(t *testing.T) {
	const pw = "Secret-Value-123"
	for _, f := range []Format{FormatText, FormatPlain, FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, f, false).Assessment(strength.Assess(pw)))
		assert.NotContains(t, buf.String(), pw, f)
	}
}

func TestUnknownFormat(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, Format("xml"), false)
	assert.Error(t, p.Passwords([]Result{NewResult("x", true)}))
	assert.Error(t, p.Assessment(strength.Assess("x")))
}

func TestColor(t *testing.T) {
	assert.False(t, ColorEnabled(&bytes.Buffer{}))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout))

	// with colour requested the label text is still present
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatText, true).Passwords([]Result{NewResult("Abcdefgh1!", true)}))
	assert.Contains(t, buf.String(), "Strong")
}

func TestCopied(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText, false)

	require.NoError(t, p.Copied(NewResult("Abcdefgh1!", true)))
	assert.Equal(t, "Password copied to clipboard (10 characters)\nStrength: Strong (score 4)\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Copied(NewResult("Abcdefgh1!", false)))
	assert.Equal(t, "Password copied to clipboard (10 characters)\n", buf.String())
}
