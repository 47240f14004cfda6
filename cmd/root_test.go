package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/charset"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// sandbox gives each test an empty home and working directory so no real
// config, .env or telemetry file is touched.
func sandbox(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "1")
	t.Chdir(t.TempDir())
	logger.SetLogger(zaptest.NewLogger(t))
	return home
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func defaultConfig() password.Config {
	return password.Config{
		Length:    12,
		Selection: charset.Selection{Enabled: charset.All(), ExcludeAmbiguous: true},
	}
}

func TestGenerateDefaults(t *testing.T) {
	sandbox(t)
	r := run(t, "", "generate", "-o", "plain")
	require.Equal(t, 0, r.code, r.stderr)

	out := lines(r.stdout)
	require.Len(t, out, 1)
	assert.NoError(t, password.Check(out[0], defaultConfig()))
	assert.Empty(t, r.stderr)
}

func TestGenerateText(t *testing.T) {
	sandbox(t)
	r := run(t, "", "generate", "--length", "16")
	require.Equal(t, 0, r.code, r.stderr)

	out := lines(r.stdout)
	require.Len(t, out, 2)
	assert.Len(t, out[0], 16)
	assert.Regexp(t, `^Strength: (Weak|Moderate|Strong) \(score \d\)$`, out[1])
}

func TestGenerateJSON(t *testing.T) {
	sandbox(t)
	r := run(t, "", "gen", "-n", "3", "-l", "16", "-o", "json")
	require.Equal(t, 0, r.code, r.stderr)

	var records []struct {
		Password string `json:"password"`
		Strength string `json:"strength"`
		Score    int    `json:"score"`
		Length   int    `json:"length"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &records))
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.Len(t, rec.Password, 16)
		assert.Equal(t, 16, rec.Length)
		// sixteen characters of four types
		assert.Equal(t, "Strong", rec.Strength)
		assert.Equal(t, 5, rec.Score)
	}
}

func TestGenerateNoStrength(t *testing.T) {
	sandbox(t)
	r := run(t, "", "generate", "--no-strength", "-o", "json")
	require.Equal(t, 0, r.code, r.stderr)
	assert.NotContains(t, r.stdout, "strength")
	assert.NotContains(t, r.stdout, "score")
}

func TestGenerateCategories(t *testing.T) {
	sandbox(t)
	r := run(t, "", "generate", "-c", "lower,digits", "-l", "8", "-n", "20", "-o", "plain")
	require.Equal(t, 0, r.code, r.stderr)

	cfg := password.Config{
		Length:    8,
		Selection: charset.Selection{Enabled: charset.SetOf(charset.Lowercase, charset.Digit), ExcludeAmbiguous: true},
	}
	out := lines(r.stdout)
	require.Len(t, out, 20)
	for _, pw := range out {
		assert.NoError(t, password.Check(pw, cfg))
	}
}

func TestGenerateValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "length below category count",
			args: []string{"generate", "-l", "3"},
			want: []string{"length must be at least 4 to include each selected type (got 3)", "Hint: increase the length to 4"},
		},
		{
			name: "nothing selected",
			args: []string{"generate", "--lowercase=false", "--uppercase=false", "--digits=false", "--symbols=false"},
			want: []string{"choose at least one character type"},
		},
		{
			name: "zero count",
			args: []string{"generate", "-n", "0"},
			want: []string{"invalid configuration", "count must be at least 1"},
		},
		{
			name: "unknown output",
			args: []string{"generate", "-o", "xml"},
			want: []string{"output must be one of text, plain, json, yaml"},
		},
		{
			name: "unknown category",
			args: []string{"generate", "-c", "emoji"},
			want: []string{`unknown character category "emoji"`},
		},
		{
			name: "blank category list",
			args: []string{"generate", "-c", ","},
			want: []string{"categories must name at least one character type"},
		},
		{
			name: "unknown flag",
			args: []string{"generate", "--colour"},
			want: []string{"unknown flag: --colour"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sandbox(t)
			r := run(t, "", tt.args...)
			assert.Equal(t, 2, r.code)
			assert.Empty(t, r.stdout)
			for _, want := range tt.want {
				assert.Contains(t, r.stderr, want)
			}
		})
	}
}

func TestEnvironmentAndConfigFile(t *testing.T) {
	home := sandbox(t)

	dir := filepath.Join(home, ".config", "passgen")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "passgen.yaml"),
		[]byte("categories: [digits]\nlength: 6\noutput: plain\n"), 0600))

	r := run(t, "", "generate")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Regexp(t, `^[2-9]{6}\n$`, r.stdout)

	// environment beats the file, flags beat the environment
	t.Setenv("PASSGEN_LENGTH", "9")
	r = run(t, "", "generate")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Regexp(t, `^[2-9]{9}\n$`, r.stdout)

	r = run(t, "", "generate", "-l", "5")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Regexp(t, `^[2-9]{5}\n$`, r.stdout)
}

func TestExplicitConfigFile(t *testing.T) {
	sandbox(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 2\noutput: plain\nexclude-ambiguous: false\n"), 0600))

	r := run(t, "", "--config", path, "generate")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Len(t, lines(r.stdout), 2)

	r = run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "generate")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "could not read config file")
}

func TestDotEnv(t *testing.T) {
	sandbox(t)
	require.NoError(t, os.WriteFile(".env", []byte("PASSGEN_COUNT=4\nPASSGEN_OUTPUT=plain\n"), 0600))
	t.Cleanup(func() {
		os.Unsetenv("PASSGEN_COUNT")
		os.Unsetenv("PASSGEN_OUTPUT")
	})

	r := run(t, "", "generate")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Len(t, lines(r.stdout), 4)
}

func TestInteractive(t *testing.T) {
	sandbox(t)
	// length, lower, upper, digits, symbols, exclude ambiguous, count
	answers := "8\nn\nn\ny\nn\n\n2\n"
	r := run(t, answers, "generate", "-i", "-o", "plain")
	require.Equal(t, 0, r.code, r.stderr)

	out := lines(r.stdout)
	require.Len(t, out, 2)
	for _, pw := range out {
		assert.Regexp(t, `^[2-9]{8}$`, pw)
	}
	assert.Contains(t, r.stderr, "Password length [12]: ")
}

func TestInteractiveCancelled(t *testing.T) {
	sandbox(t)
	r := run(t, "10\n", "generate", "-i")
	assert.Equal(t, 130, r.code)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "cancelled")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{name: "argument", args: []string{"classify", "Abcdefgh1!", "-o", "plain"}, want: "Strong\n"},
		{name: "piped", stdin: "abcdefgh\n", args: []string{"classify", "-o", "plain"}, want: "Weak\n"},
		{name: "piped crlf", stdin: "Abcdefgh\r\n", args: []string{"classify", "-o", "plain"}, want: "Moderate\n"},
		{name: "empty line", stdin: "\n", args: []string{"classify", "-o", "plain"}, want: "Weak\n"},
		{
			name: "text",
			args: []string{"classify", "Ab1"},
			want: "Strength: Moderate (score 2, length 3, types: lowercase, uppercase, digits)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sandbox(t)
			r := run(t, tt.stdin, tt.args...)
			require.Equal(t, 0, r.code, r.stderr)
			assert.Equal(t, tt.want, r.stdout)
		})
	}
}

func TestClassifyJSONOmitsPassword(t *testing.T) {
	sandbox(t)
	r := run(t, "Tr0ub4dor&3x\n", "classify", "-o", "json")
	require.Equal(t, 0, r.code, r.stderr)
	assert.JSONEq(t, `{"level":"Strong","score":5,"length":12,"types":["lowercase","uppercase","digits","symbols"]}`, r.stdout)
	assert.NotContains(t, r.stdout, "Tr0ub4dor")
}

func TestClassifyNoInput(t *testing.T) {
	sandbox(t)
	r := run(t, "", "classify")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "no password given")

	r = run(t, "", "classify", "a", "b")
	assert.NotEqual(t, 0, r.code)
}

func TestSecretsNeverLoggedOrTraced(t *testing.T) {
	home := sandbox(t)
	logFile := filepath.Join(t.TempDir(), "passgen.log")

	r := run(t, "", "--telemetry", "--log-level", "debug", "--log-file", logFile, "generate", "-o", "plain", "-n", "3")
	require.Equal(t, 0, r.code, r.stderr)
	generated := lines(r.stdout)
	require.Len(t, generated, 3)

	r = run(t, "", "--telemetry", "--log-level", "debug", "--log-file", logFile, "classify", "Sup3r-Secret-Value")
	require.Equal(t, 0, r.code, r.stderr)

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Passwords generated")
	assert.Contains(t, string(logs), "Password classified")

	spans, err := os.ReadFile(filepath.Join(home, ".passgen", "telemetry.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(spans), "password.generate")
	assert.Contains(t, string(spans), "strength.classify")

	for _, secret := range append(generated, "Sup3r-Secret-Value") {
		assert.NotContains(t, string(logs), secret)
		assert.NotContains(t, string(spans), secret)
	}
}

func TestRootWithoutSubcommand(t *testing.T) {
	sandbox(t)
	r := run(t, "")
	assert.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "generate")
	assert.Contains(t, r.stdout, "classify")
}
