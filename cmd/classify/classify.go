// cmd/classify/classify.go

package classify

import (
	"io"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/config"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/eos_io"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/output"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/strength"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// NewCmd returns the classify subcommand.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [password]",
		Short: "Rate the strength of a password",
		Long: `Rate a password as Weak, Moderate or Strong.

The rating adds one point for at least 8 characters, one more for at least 12,
and one for every character type used beyond the first. It is a quick
heuristic, not an entropy estimate.

Without an argument the password is read from the terminal without echo, or as
one line from piped input. Prefer that over passing the password as an
argument, which may end up in shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: eos_cli.Wrap(runClassify),
	}

	cli.AddStringFlag(cmd.Flags(), config.KeyOutput, "o", config.Defaults().Output, "Output format: text, plain, json or yaml")
	return cmd
}

func runClassify(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)

	// ASSESS
	s, ok := config.FromContext(cmd.Context())
	if !ok {
		return eos_err.NewInternalError("settings were not loaded", cerr.AssertionFailedf("no settings in context"))
	}
	format, err := output.ParseFormat(s.Output)
	if err != nil {
		return eos_err.NewExpectedError(eos_err.NewValidationError("invalid output format", err))
	}

	var pw string
	if len(args) == 1 {
		pw = args[0]
	} else {
		pw, err = eos_io.ReadSecret(rc.Ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), "Password")
		if err != nil {
			return readError(err)
		}
	}

	// INTERVENE
	_, span := telemetry.Start(rc.Ctx, "strength.classify")
	defer span.End()
	a := strength.Assess(pw)
	span.SetAttributes(
		attribute.Int("password.length", a.Length),
		attribute.Int("strength.score", a.Score),
		attribute.String("strength.level", a.Level.String()),
	)

	// EVALUATE
	log.Info("Password classified",
		zap.Int("length", a.Length),
		zap.Int("score", a.Score),
		zap.Stringer("level", a.Level),
		zap.Bool("from_argument", len(args) == 1),
	)

	if err := output.NewPrinter(cmd.OutOrStdout(), format, output.ColorEnabled(cmd.OutOrStdout())).Assessment(a); err != nil {
		return eos_err.NewSystemError("failed to write result", err)
	}
	return nil
}

func readError(err error) error {
	switch {
	case cerr.Is(err, io.ErrUnexpectedEOF):
		return eos_err.NewExpectedError(eos_err.NewValidationError("no password given", err,
			"pass the password as an argument or pipe it on stdin"))
	case cerr.Is(err, eos_io.ErrInputTooLong):
		return eos_err.NewExpectedError(eos_err.NewValidationError("password is too long", err))
	default:
		return eos_err.NewSystemError("could not read password", err)
	}
}
