package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/trendplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_KeepsOrder(t *testing.T) {
	data := []byte(`{
		"Tue, 02 Jan 2024 00:00:00 GMT": {"total": 110, "pass": 95, "fail": 15},
		"Mon, 01 Jan 2024 00:00:00 GMT": {"total": 100, "pass": 90, "fail": 10, "error": null}
	}`)

	record, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, record.Entries, 2)

	first := record.Entries[0]
	assert.Equal(t, "Tue, 02 Jan 2024 00:00:00 GMT", first.Key)
	assert.Equal(t, []string{"total", "pass", "fail"}, first.MetricKeys)
	assert.Equal(t, schema.RawValue{Kind: schema.RawNumber, Text: "110"}, first.Metrics["total"])

	second := record.Entries[1]
	assert.Equal(t, []string{"total", "pass", "fail", "error"}, second.MetricKeys)
	assert.Equal(t, schema.RawNull, second.Metrics["error"].Kind)
}

func TestParse_Groups(t *testing.T) {
	data := []byte(`{
		"2024-01-01": {"sizes": {"ls": 1000, "cp": 2000}},
		"2024-01-02": {"sizes": {"ls": 1100, "[": null}}
	}`)

	record, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, record.Entries, 2)

	first := record.Entries[0]
	assert.Empty(t, first.MetricKeys)
	assert.Equal(t, []string{"sizes"}, first.GroupKeys)
	assert.Equal(t, []string{"ls", "cp"}, first.Groups["sizes"].Names)
	assert.Equal(t, "2000", first.Groups["sizes"].Values["cp"].Text)

	second := record.Entries[1]
	assert.Equal(t, []string{"ls", "["}, second.Groups["sizes"].Names)
	assert.Equal(t, schema.RawNull, second.Groups["sizes"].Values["["].Kind)
}

func TestParse_ScalarKinds(t *testing.T) {
	data := []byte(`{"2024-01-01": {"a": "12.5", "b": true, "c": [1, 2], "d": "tab\tchar"}}`)

	record, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, record.Entries, 1)

	metrics := record.Entries[0].Metrics
	assert.Equal(t, schema.RawValue{Kind: schema.RawString, Text: "12.5"}, metrics["a"])
	assert.Equal(t, schema.RawBool, metrics["b"].Kind)
	assert.Equal(t, schema.RawOther, metrics["c"].Kind)
	assert.Equal(t, "tab\tchar", metrics["d"].Text)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"array document", `[1, 2, 3]`},
		{"truncated", `{"2024-01-01": {"total": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_NotObjectSentinel(t *testing.T) {
	_, err := Parse([]byte(`"oops"`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestParse_SkipsNonObjectEntries(t *testing.T) {
	record, err := Parse([]byte(`{"note": 3, "2024-01-01": {"total": 1}, "tags": ["a"], "2024-01-02": {"total": 2}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"note", "tags"}, record.Skipped)
	require.Len(t, record.Entries, 2)
	assert.Equal(t, "2024-01-01", record.Entries[0].Key)
	assert.Equal(t, "2024-01-02", record.Entries[1].Key)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "size.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"2024-01-01": {"size": 1, "multisize": 2}}`), 0o644))

	record, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, record.Entries, 1)
	assert.Equal(t, []string{"size", "multisize"}, record.Entries[0].MetricKeys)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
