// pkg/interaction/settings.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/CodeMonkeyCybersecurity/passgen/pkg/charset"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/config"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/shared"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var categoryLabels = map[charset.Category]string{
	charset.Lowercase: "Include lowercase letters (a-z)",
	charset.Uppercase: "Include uppercase letters (A-Z)",
	charset.Digit:     "Include digits (0-9)",
	charset.Symbol:    "Include symbols (!@#...)",
}

// PromptSettings walks the user through the generation options, offering the
// values in defaults. Blank answers keep the offered value. Output, logging
// and other non-generation settings are carried over unchanged.
func PromptSettings(ctx context.Context, in io.Reader, w io.Writer, defaults config.Settings) (config.Settings, error) {
	logger := otelzap.Ctx(ctx)
	reader := bufio.NewReader(in)
	s := defaults

	// ASSESS
	offered, err := defaults.EnabledCategories()
	if err != nil {
		return defaults, err
	}

	// INTERVENE
	if s.Length, err = PromptInt(ctx, reader, w, "Password length", defaults.Length, 1, shared.MaxLength); err != nil {
		return defaults, err
	}

	var set charset.Set
	for round := 1; round <= maxAttempts; round++ {
		set = 0
		for _, c := range charset.Categories() {
			on, err := PromptYesNo(ctx, reader, w, categoryLabels[c], offered.Has(c))
			if err != nil {
				return defaults, err
			}
			if on {
				set = set.Add(c)
			}
		}
		if set.Len() > 0 {
			break
		}
		logger.Warn("No character type selected", zap.Int("round", round))
		_, _ = fmt.Fprintln(w, "Choose at least one character type.")
	}
	s.SetCategories(set)

	if s.ExcludeAmbiguous, err = PromptYesNo(ctx, reader, w, "Exclude ambiguous characters (I l 1 O 0)", defaults.ExcludeAmbiguous); err != nil {
		return defaults, err
	}
	if s.Count, err = PromptInt(ctx, reader, w, "How many passwords", defaults.Count, 1, shared.MaxCount); err != nil {
		return defaults, err
	}

	// EVALUATE
	logger.Info("Interactive settings chosen",
		zap.Int("length", s.Length),
		zap.Strings("categories", set.Names()),
		zap.Bool("exclude_ambiguous", s.ExcludeAmbiguous),
		zap.Int("count", s.Count),
	)
	return s, nil
}
