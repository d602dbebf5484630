package outwriter

import (
	"os"

	"github.com/vanshpreet5618/Helios/internal/contract"
	"golang.org/x/term"
)

// narrowTableWidth is the terminal width below which optional columns are dropped.
const narrowTableWidth = 72

// getTerminalWidth returns the width override from config, the detected
// terminal width, or 80 when neither is available.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		return 80
	}
	return detectedWidth
}

// isNarrow reports whether tables should drop optional columns.
func isNarrow(cfg *contract.Config) bool {
	return getTerminalWidth(cfg) < narrowTableWidth
}
