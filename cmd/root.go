/* cmd/root.go */

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/passgen/cmd/classify"
	"github.com/CodeMonkeyCybersecurity/passgen/cmd/generate"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/config"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_io"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewRootCmd builds the passgen command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   shared.AppName,
		Short: "Generate random passwords and estimate their strength",
		Long: `passgen generates passwords from a cryptographically secure random source.

Every selected character type is guaranteed to appear at least once, and
visually ambiguous characters (I l 1 O 0) can be left out. A coarse strength
rating (Weak, Moderate, Strong) is reported alongside each password.

Settings are read from flags, PASSGEN_* environment variables, a .env file in
the working directory and ~/.config/passgen/passgen.yaml, in that order of
precedence. Generated passwords are written to stdout only; they are never
logged or stored.`,
		Version:           shared.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: eos_cli.Wrap(func(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			rc.Log.Debug("No subcommand provided, showing help")
			return cli.ShowHelp(cmd)
		}),
	}

	fs := root.PersistentFlags()
	cli.AddStringFlag(fs, config.KeyConfig, "", "", "Path to a YAML config file")
	cli.AddStringFlag(fs, config.KeyLogLevel, "", "", "Log level: debug, info, warn or error (default warn, or $LOG_LEVEL)")
	cli.AddStringFlag(fs, config.KeyLogFile, "", "", "Also write JSON logs to this file")
	cli.AddBoolFlag(fs, config.KeyTelemetry, "", false, "Append trace spans to ~/.passgen/telemetry.jsonl")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return eos_err.NewExpectedError(eos_err.NewValidationError(err.Error(), err, "run 'passgen --help' for usage"))
	})

	root.AddCommand(generate.NewCmd(), classify.NewCmd())
	return root
}

// setup resolves configuration and initialises logging and telemetry before
// any subcommand runs. The resolved settings travel in the command context.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(shared.DotEnvFile); err != nil {
		return eos_err.NewExpectedError(eos_err.NewValidationError("could not read .env file", err))
	}

	v := viper.New()
	config.SetDefaults(v)
	cli.SetViperEnvPrefix(v, shared.EnvPrefix)
	if err := cli.BindFlagsToViper(cmd, v); err != nil {
		return eos_err.NewInternalError("failed to bind flags", err)
	}

	file, err := config.ReadConfigFile(v, v.GetString(config.KeyConfig))
	if err != nil {
		return eos_err.NewExpectedError(eos_err.NewValidationError("could not read config file", err))
	}

	settings, err := config.Load(v)
	if err != nil {
		return eos_err.NewExpectedError(eos_err.NewValidationError("invalid configuration", err))
	}

	log := logger.Initialize(logger.Options{Level: settings.LogLevel, File: settings.LogFile})

	if err := telemetry.Init(shared.AppName, telemetry.Options{Enabled: settings.Telemetry}); err != nil {
		// tracing is optional; keep going without it
		log.Warn("Telemetry disabled", zap.Error(err))
		_ = telemetry.Init(shared.AppName, telemetry.Options{})
	}

	log.Debug("Configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config_file", file),
		zap.Int("length", settings.Length),
		zap.Int("count", settings.Count),
		zap.String("output", settings.Output),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(config.WithSettings(ctx, settings))
	return nil
}

// Run executes one command line and returns the process exit code. Errors
// are printed to errOut; results go to out.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := telemetry.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.L().Warn("Failed to flush telemetry", zap.Error(shutdownErr))
	}

	if err != nil {
		if eos_err.IsExpectedUserError(err) {
			logger.L().Info("CLI completed with user error", zap.Error(err))
		} else {
			logger.L().Error("CLI execution error", zap.Error(err))
		}
		fmt.Fprintln(errOut, "Error: "+eos_err.UserMessage(err))
	}
	// stderr cannot always be synced
	_ = logger.Sync()

	return eos_err.GetExitCode(err)
}

// Execute runs passgen with the process arguments and exits.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
