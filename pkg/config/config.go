// pkg/config/config.go

// Package config resolves passgen settings from defaults, a .env file, an
// optional YAML config file, PASSGEN_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/charset"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/password"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyLength           = "length"
	KeyLowercase        = "lowercase"
	KeyUppercase        = "uppercase"
	KeyDigits           = "digits"
	KeySymbols          = "symbols"
	KeyCategories       = "categories"
	KeyExcludeAmbiguous = "exclude-ambiguous"
	KeyCount            = "count"
	KeyOutput           = "output"
	KeyNoStrength       = "no-strength"
	KeyConfig           = "config"
	KeyLogLevel         = "log-level"
	KeyLogFile          = "log-file"
	KeyTelemetry        = "telemetry"
)

// Settings is the fully resolved configuration of one run.
type Settings struct {
	Length           int      `mapstructure:"length" validate:"min=1,max=4096"`
	Lowercase        bool     `mapstructure:"lowercase"`
	Uppercase        bool     `mapstructure:"uppercase"`
	Digits           bool     `mapstructure:"digits"`
	Symbols          bool     `mapstructure:"symbols"`
	Categories       []string `mapstructure:"categories"`
	ExcludeAmbiguous bool     `mapstructure:"exclude-ambiguous"`
	Count            int      `mapstructure:"count" validate:"min=1,max=1000"`
	Output           string   `mapstructure:"output" validate:"oneof=text plain json yaml"`
	NoStrength       bool     `mapstructure:"no-strength"`
	LogLevel         string   `mapstructure:"log-level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFile          string   `mapstructure:"log-file"`
	Telemetry        bool     `mapstructure:"telemetry"`
}

// Defaults mirrors the generator's out-of-the-box behaviour: every category
// on, ambiguous characters excluded, twelve characters.
func Defaults() Settings {
	return Settings{
		Length:           shared.DefaultLength,
		Lowercase:        true,
		Uppercase:        true,
		Digits:           true,
		Symbols:          true,
		ExcludeAmbiguous: shared.DefaultExcludeAmbiguous,
		Count:            shared.DefaultCount,
		Output:           shared.DefaultOutput,
	}
}

// SetDefaults registers Defaults() on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyLength, d.Length)
	v.SetDefault(KeyLowercase, d.Lowercase)
	v.SetDefault(KeyUppercase, d.Uppercase)
	v.SetDefault(KeyDigits, d.Digits)
	v.SetDefault(KeySymbols, d.Symbols)
	v.SetDefault(KeyCategories, []string{})
	v.SetDefault(KeyExcludeAmbiguous, d.ExcludeAmbiguous)
	v.SetDefault(KeyCount, d.Count)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyNoStrength, false)
	v.SetDefault(KeyTelemetry, false)
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = shared.DotEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return cerr.Wrapf(err, "load %s", path)
	}
	return nil
}

// SearchPaths lists the directories searched for passgen.yaml: the XDG config
// directory, then ~/.config/passgen when XDG_CONFIG_HOME points elsewhere.
func SearchPaths() []string {
	dirs := []string{filepath.Join(xdg.ConfigHome(), shared.AppName)}
	if legacy := filepath.Join(xdg.Home(), ".config", shared.AppName); legacy != dirs[0] {
		dirs = append(dirs, legacy)
	}
	return dirs
}

// ReadConfigFile reads an explicit config file, or the first passgen.yaml in
// SearchPaths. Only an explicit path that cannot be read is an error. The
// returned string is the file used, empty when none.
func ReadConfigFile(v *viper.Viper, explicit string) (string, error) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return "", cerr.WithHint(
				cerr.Wrapf(err, "read config file %s", explicit),
				"check that the file exists and is valid YAML",
			)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName(shared.ConfigFileName)
	v.SetConfigType("yaml")
	for _, dir := range SearchPaths() {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", cerr.Wrap(err, "read config file")
	}
	return v.ConfigFileUsed(), nil
}

// Load unmarshals v into Settings and validates the result.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, cerr.Wrap(err, "decode settings")
	}
	if err := s.Validate(); err != nil {
		return nil, eos_err.WrapValidationError(err, "check the flags, PASSGEN_* environment variables and the config file")
	}
	return &s, nil
}

// errBlankCategories rejects an explicit category list with no names in it,
// such as "-c ,".
var errBlankCategories = cerr.WithHint(
	cerr.New("categories must name at least one character type"),
	"valid categories are lowercase, uppercase, digits, symbols",
)

// EnabledCategories returns the selected categories. A non-empty Categories
// list replaces the four per-category switches; a list of only blank names is
// an error.
func (s Settings) EnabledCategories() (charset.Set, error) {
	if len(s.Categories) > 0 {
		set, err := charset.ParseSet(s.Categories)
		if err != nil {
			return 0, err
		}
		if set.Len() == 0 {
			return 0, errBlankCategories
		}
		return set, nil
	}

	var set charset.Set
	if s.Lowercase {
		set = set.Add(charset.Lowercase)
	}
	if s.Uppercase {
		set = set.Add(charset.Uppercase)
	}
	if s.Digits {
		set = set.Add(charset.Digit)
	}
	if s.Symbols {
		set = set.Add(charset.Symbol)
	}
	return set, nil
}

// SetCategories turns the per-category switches to match set and clears any
// explicit category list.
func (s *Settings) SetCategories(set charset.Set) {
	s.Categories = nil
	s.Lowercase = set.Has(charset.Lowercase)
	s.Uppercase = set.Has(charset.Uppercase)
	s.Digits = set.Has(charset.Digit)
	s.Symbols = set.Has(charset.Symbol)
}

// GenerationConfig maps the settings to a generator request.
func (s Settings) GenerationConfig() (password.Config, error) {
	set, err := s.EnabledCategories()
	if err != nil {
		return password.Config{}, err
	}
	return password.Config{
		Length: s.Length,
		Selection: charset.Selection{
			Enabled:          set,
			ExcludeAmbiguous: s.ExcludeAmbiguous,
		},
	}, nil
}
