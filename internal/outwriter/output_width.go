package outwriter

import (
	"os"

	"github.com/huangsam/trendplot/internal/contract"
	"golang.org/x/term"
)

// Bounds for a single value column in the text table.
const (
	minCellWidth = 6
	maxCellWidth = 24
)

// GetTermWidth returns the terminal width, honoring the --term-width override.
func GetTermWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.TermWidth > 0 {
		return cfg.TermWidth
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// GetMaxTableCellWidth calculates the maximum header width of each value column
// when numColumns value columns share the terminal with the Date column.
func GetMaxTableCellWidth(cfg *contract.Config, numColumns int) int {
	if numColumns <= 0 {
		return maxCellWidth
	}

	// Reserve space for the Date column with borders/padding
	available := GetTermWidth(cfg) - len(DateTimeFormat) - 4

	// Every value column pays for a separator and padding
	perColumn := available/numColumns - 3
	if perColumn < minCellWidth {
		return minCellWidth
	}
	if perColumn > maxCellWidth {
		return maxCellWidth
	}
	return perColumn
}
