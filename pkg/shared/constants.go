// pkg/shared/constants.go

package shared

// Version is overridden at build time with -ldflags "-X ...shared.Version=...".
var Version = "dev"

const (
	// AppName names the binary, the config directory and the span service.
	AppName = "passgen"

	// EnvPrefix is prepended (with "_") to environment variable names read by viper.
	EnvPrefix = "PASSGEN"

	// ConfigFileName is looked up as <name>.yaml in the config search path.
	ConfigFileName = "passgen"

	// DotEnvFile is loaded from the working directory when present.
	DotEnvFile = ".env"
)

// Generation defaults, matching the desktop tool this CLI replaces.
const (
	DefaultLength           = 12
	DefaultCount            = 1
	DefaultExcludeAmbiguous = true
	DefaultOutput           = "text"

	MaxLength = 4096
	MaxCount  = 1000
)

// Output formats understood by the generate and classify commands.
const (
	OutputText  = "text"
	OutputPlain = "plain"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// OutputFormats lists every accepted --output value.
var OutputFormats = []string{OutputText, OutputPlain, OutputJSON, OutputYAML}
