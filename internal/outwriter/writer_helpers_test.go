package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/trendplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValueFormatter(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		missing   string
		value     float64
		expected  string
	}{
		{"one decimal", 1, "-", 105.04, "105.0"},
		{"no decimals", 0, "-", 104.6, "105"},
		{"negative", 2, "-", -42.567, "-42.57"},
		{"missing in text", 1, "-", schema.Missing, "-"},
		{"missing in csv", 3, "", schema.Missing, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, newValueFormatter(tt.precision, tt.missing)(tt.value))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"rows": 2}))
	assert.Equal(t, "{\n  \"rows\": 2\n}\n", buf.String())

	// Channels cannot be encoded
	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"timestamp", "total"}, func(w *csv.Writer) error {
		return w.Write([]string{"2024-01-01T00:00:00Z", "100"})
	})
	require.NoError(t, err)
	assert.Equal(t, "timestamp,total\n2024-01-01T00:00:00Z,100\n", buf.String())

	err = writeCSVWithHeader(&buf, []string{"timestamp"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("writes csv table to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gnu.csv")
		err := writeWithFile(path, func(w io.Writer) error {
			return writeCSVTable(w, sampleTable(), 0)
		}, "Wrote CSV")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "2024-01-02T00:00:00Z,2024-01-02,110,5,1100,")
	})

	t.Run("propagates writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gnu.json")
		err := writeWithFile(path, func(io.Writer) error {
			return assert.AnError
		}, "Wrote JSON")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("invalid path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/path/table.json", func(io.Writer) error {
			return nil
		}, "Wrote JSON")
		assert.Error(t, err)
	})
}
