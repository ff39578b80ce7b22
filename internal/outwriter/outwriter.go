// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
)

// DateTimeFormat is the layout used for timestamps in human-readable output.
const DateTimeFormat = "2006-01-02 15:04:05"

// LogChartHeader prints a concise, 2-line header for each chart run.
func LogChartHeader(cfg *contract.Config, kind schema.ChartKind) {
	inputName := filepath.Base(cfg.InputPath)
	if inputName == "" || inputName == "." {
		inputName = "unknown"
	}

	// Line 1: The chart summary (Input and Kind)
	_, _ = contract.HeaderColor.Printf("📈 Input: %s (Chart: %s)\n", inputName, kind)

	// Line 2: How the series are smoothed and drawn
	fmt.Printf("🧮 Window: %d | Renderer: %s | Format: %s\n", cfg.SmoothWindow, cfg.Renderer, cfg.Format)
}

// LogChartWritten reports a written image on stderr so stdout stays clean for dumps.
func LogChartWritten(path string) {
	fmt.Fprintf(os.Stderr, "🖼️  Wrote chart to %s\n", path)
}
