package contract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name   string
		status string
	}{
		{"drawn", DrawnValue},
		{"skipped", SkippedValue},
		{"empty", EmptyValue},
		{"unknown", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.status)
			// Should contain the plain label
			assert.Contains(t, result, tt.status)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "ls", "ls"},
		{"bracket binary", "[", "["},
		{"slash", "usr/bin/ls", "usr_bin_ls"},
		{"backslash", `a\b`, "a_b"},
		{"colon", "c:d", "c_d"},
		{"control", "a\nb", "a_b"},
		{"current dir", ".", "_."},
		{"parent dir", "..", "_.."},
		{"empty", "", "_"},
		{"whitespace", "  ", "_"},
		{"unicode kept", "größe", "größe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFileName(tt.input))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "abcdef...", TruncateText("abcdefghijkl", 9))
	// Too narrow to truncate meaningfully
	assert.Equal(t, "abcdef", TruncateText("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("perhaps")
	assert.Error(t, err)
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".trendplot_history.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	quiet := newLoggerTo(&buf, false)
	assert.Equal(t, logrus.WarnLevel, quiet.GetLevel())
	quiet.Debug("hidden")
	assert.Empty(t, buf.String())

	loud := newLoggerTo(&buf, true)
	assert.Equal(t, logrus.DebugLevel, loud.GetLevel())
	loud.WithField("window", 15).Debug("smoothing")
	assert.Contains(t, buf.String(), "smoothing")
	assert.Contains(t, buf.String(), "window=15")
}
