/* pkg/interaction/types.go */

package interaction

const (
	DefaultYesPrompt = "Y/n"
	DefaultNoPrompt  = "y/N"
)

const (
	YesShort = "y"
	YesLong  = "yes"
	NoShort  = "n"
	NoLong   = "no"
)

// maxAttempts bounds how often a single question is re-asked after an
// answer that cannot be parsed.
const maxAttempts = 3
