package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Series status label constants.
const (
	DrawnValue   = "Drawn"   // Drawn value
	SkippedValue = "Skipped" // Skipped value
	EmptyValue   = "Empty"   // Empty value
)

// Color variables for console output.
var (
	DrawnColor   = color.New(color.FgGreen)               // drawnColor represents a plotted series.
	SkippedColor = color.New(color.FgYellow)              // skippedColor represents a column left out of the plot.
	EmptyColor   = color.New(color.FgRed, color.Bold)     // emptyColor represents a series with no data.
	HeaderColor  = color.New(color.FgCyan, color.Bold)    // headerColor represents run headers.
	MutedColor   = color.New(color.FgHiBlack)             // mutedColor represents secondary detail.
	WarnColor    = color.New(color.FgMagenta, color.Bold) // warnColor represents non-fatal warnings.
)

// GetColorLabel returns a colored status label for console output.
func GetColorLabel(status string) string {
	switch status {
	case DrawnValue:
		return DrawnColor.Sprint(status)
	case SkippedValue:
		return SkippedColor.Sprint(status)
	case EmptyValue:
		return EmptyColor.Sprint(status)
	default:
		return status
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s %s: %v\n", WarnColor.Sprint("Warn"), msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for render history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".trendplot_history.db"
	}
	return filepath.Join(homeDir, ".trendplot_history.db")
}

// SanitizeFileName makes a series name safe to use as a single path element.
// Path separators and control characters become underscores. Names that would
// resolve to the current or parent directory are prefixed.
func SanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		case r < 0x20 || r == 0x7f:
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(name))
	switch cleaned {
	case "":
		return "_"
	case ".", "..":
		return "_" + cleaned
	}
	return cleaned
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." and at least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
