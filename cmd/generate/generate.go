// cmd/generate/generate.go

package generate

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/config"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_io"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/output"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/password"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/telemetry"
	"github.com/atotto/clipboard"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	flagInteractive = "interactive"
	flagCopy        = "copy"
)

// newGenerator is swapped by tests to inject a failing entropy source.
var newGenerator = func() *password.Generator { return password.New() }

// writeClipboard is swapped by tests; the real clipboard needs a desktop
// session (xclip, xsel or wl-copy on Linux).
var writeClipboard = clipboard.WriteAll

// NewCmd returns the generate subcommand.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate one or more random passwords",
		Long: `Generate passwords from the selected character types.

At least one character of every selected type is always included, provided the
length allows it. With --exclude-ambiguous (on by default) the characters
I l 1 O 0 are never used.

Examples:
  passgen generate
  passgen generate -l 20 --symbols=false
  passgen generate -c lower,digits -l 8 -n 5 -o json
  passgen generate -i
  passgen generate --copy

With --copy the password goes to the clipboard instead of stdout; only a
notice and the strength rating are written, to stderr.`,
		Args: cobra.NoArgs,
		RunE: eos_cli.Wrap(runGenerate),
	}

	d := config.Defaults()
	fs := cmd.Flags()
	cli.AddIntFlag(fs, config.KeyLength, "l", d.Length, "Password length")
	cli.AddBoolFlag(fs, config.KeyLowercase, "", d.Lowercase, "Include lowercase letters (a-z)")
	cli.AddBoolFlag(fs, config.KeyUppercase, "", d.Uppercase, "Include uppercase letters (A-Z)")
	cli.AddBoolFlag(fs, config.KeyDigits, "", d.Digits, "Include digits (0-9)")
	cli.AddBoolFlag(fs, config.KeySymbols, "", d.Symbols, "Include symbols")
	cli.AddStringSliceFlag(fs, config.KeyCategories, "c", nil,
		"Character types to use (lowercase,uppercase,digits,symbols); overrides the individual switches")
	cli.AddBoolFlag(fs, config.KeyExcludeAmbiguous, "a", d.ExcludeAmbiguous, "Leave out I l 1 O 0")
	cli.AddIntFlag(fs, config.KeyCount, "n", d.Count, "Number of passwords to generate")
	cli.AddStringFlag(fs, config.KeyOutput, "o", d.Output, "Output format: text, plain, json or yaml")
	cli.AddBoolFlag(fs, config.KeyNoStrength, "", false, "Do not report password strength")
	cli.AddBoolFlag(fs, flagInteractive, "i", false, "Prompt for the settings instead of using flags")
	cli.AddBoolFlag(fs, flagCopy, "", false, "Copy the password to the clipboard instead of printing it (single password only)")
	return cmd
}

func runGenerate(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)

	// ASSESS
	resolved, ok := config.FromContext(cmd.Context())
	if !ok {
		return eos_err.NewInternalError("settings were not loaded", cerr.AssertionFailedf("no settings in context"))
	}
	s := *resolved

	if interactive, _ := cmd.Flags().GetBool(flagInteractive); interactive {
		var err error
		s, err = interaction.PromptSettings(rc.Ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), s)
		if err != nil {
			return promptError(err)
		}
		// answers bypass flag validation
		if err := s.Validate(); err != nil {
			return eos_err.NewExpectedError(eos_err.NewValidationError("invalid settings", err))
		}
	}

	toClipboard, _ := cmd.Flags().GetBool(flagCopy)
	if toClipboard && s.Count != 1 {
		return eos_err.NewExpectedError(eos_err.NewValidationError(
			"--copy works with a single password",
			cerr.Newf("count is %d", s.Count),
			"drop --count or --copy",
		))
	}

	format, err := output.ParseFormat(s.Output)
	if err != nil {
		return eos_err.NewExpectedError(eos_err.NewValidationError("invalid output format", err))
	}
	cfg, err := s.GenerationConfig()
	if err != nil {
		return eos_err.NewExpectedError(eos_err.NewValidationError("invalid character types", err))
	}

	categories := cfg.Enabled.Names()
	rc.Attributes["length"] = strconv.Itoa(cfg.Length)
	rc.Attributes["categories"] = strings.Join(categories, ",")
	rc.Attributes["count"] = strconv.Itoa(s.Count)

	// INTERVENE
	ctx, span := telemetry.Start(rc.Ctx, "password.generate",
		attribute.Int("password.length", cfg.Length),
		attribute.StringSlice("password.categories", categories),
		attribute.Bool("password.exclude_ambiguous", cfg.ExcludeAmbiguous),
		attribute.Int("password.count", s.Count),
		attribute.Bool("password.clipboard", toClipboard),
	)
	defer span.End()

	passwords, err := newGenerator().GenerateN(cfg, s.Count)
	if err != nil {
		span.SetStatus(codes.Error, "generation failed")
		return classifyGenerateError(ctx, err)
	}

	// EVALUATE
	results := make([]output.Result, 0, len(passwords))
	levels := make([]string, 0, len(passwords))
	for _, pw := range passwords {
		if err := password.Check(pw, cfg); err != nil {
			span.SetStatus(codes.Error, "verification failed")
			return eos_err.NewInternalError("generated password failed verification", err)
		}
		r := output.NewResult(pw, !s.NoStrength)
		if r.Strength != nil {
			levels = append(levels, r.Strength.String())
		}
		results = append(results, r)
	}
	span.SetAttributes(attribute.StringSlice("password.strength", levels))

	log.Info("Passwords generated",
		zap.Int("count", len(results)),
		zap.Int("length", cfg.Length),
		zap.Strings("categories", categories),
		zap.Bool("exclude_ambiguous", cfg.ExcludeAmbiguous),
		zap.Strings("strength", levels),
		zap.Bool("clipboard", toClipboard),
	)

	if toClipboard {
		return copyToClipboard(ctx, cmd.ErrOrStderr(), results[0])
	}

	out := cmd.OutOrStdout()
	if err := output.NewPrinter(out, format, output.ColorEnabled(out)).Passwords(results); err != nil {
		return eos_err.NewSystemError("failed to write passwords", err)
	}
	return nil
}

// copyToClipboard places r.Password on the clipboard and reports it on w
// without showing the password.
func copyToClipboard(ctx context.Context, w io.Writer, r output.Result) error {
	if err := writeClipboard(r.Password); err != nil {
		return eos_err.NewSystemError("could not copy the password to the clipboard", err,
			"on Linux install xclip, xsel or wl-clipboard",
			"or run without --copy and pipe the output instead",
		)
	}
	otelzap.Ctx(ctx).Info("Password copied to clipboard", zap.Int("length", r.Length))

	if err := output.NewPrinter(w, output.FormatText, output.ColorEnabled(w)).Copied(r); err != nil {
		return eos_err.NewSystemError("failed to write notice", err)
	}
	return nil
}

// classifyGenerateError turns unsatisfiable requests into validation errors
// the user can fix and everything else into internal errors.
func classifyGenerateError(ctx context.Context, err error) error {
	log := otelzap.Ctx(ctx)

	var ce *password.ConfigurationError
	if cerr.As(err, &ce) {
		log.Info("Generation request rejected",
			zap.Int("length", ce.Length),
			zap.Int("required", ce.Required),
			zap.Error(err),
		)
		return eos_err.NewExpectedError(eos_err.NewValidationError(ce.Error(), err))
	}
	log.Error("Password generation failed", zap.Error(err))
	return eos_err.NewInternalError("password generation failed", err)
}

func promptError(err error) error {
	if cerr.Is(err, interaction.ErrInputClosed) || cerr.Is(err, context.Canceled) {
		return eos_err.NewUserCancelledError("interactive setup")
	}
	return eos_err.NewExpectedError(eos_err.NewValidationError("could not read interactive answers", err))
}
