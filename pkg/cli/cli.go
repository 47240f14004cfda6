// pkg/cli/cli.go

// Package cli holds small helpers for declaring cobra flags and binding them
// to viper so that flags, environment and config file share one key space.
package cli

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AddStringFlag adds a string flag.
func AddStringFlag(fs *pflag.FlagSet, name, shorthand, def, help string) {
	fs.StringP(name, shorthand, def, help)
}

// AddBoolFlag adds a boolean flag.
func AddBoolFlag(fs *pflag.FlagSet, name, shorthand string, def bool, help string) {
	fs.BoolP(name, shorthand, def, help)
}

// AddIntFlag adds an int flag.
func AddIntFlag(fs *pflag.FlagSet, name, shorthand string, def int, help string) {
	fs.IntP(name, shorthand, def, help)
}

// AddStringSliceFlag adds a string slice flag.
func AddStringSliceFlag(fs *pflag.FlagSet, name, shorthand string, def []string, help string) {
	fs.StringSliceP(name, shorthand, def, help)
}

// BindFlagsToViper binds all local and persistent flags of cmd to v.
func BindFlagsToViper(cmd *cobra.Command, v *viper.Viper) error {
	var result error
	bind := func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	return result
}

// SetViperEnvPrefix lets v read PREFIX_KEY environment variables, with
// dashes in keys mapped to underscores.
func SetViperEnvPrefix(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// ShowHelp prints command usage without exiting.
func ShowHelp(cmd *cobra.Command) error {
	return cmd.Usage()
}
