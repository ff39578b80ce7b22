package history

import (
	"testing"
	"time"

	"github.com/huangsam/trendplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"render runs", renderRunsTable, false},
		{"series summaries", seriesSummariesTable, false},
		{"starts with underscore", "_history", false},
		{"empty name", "", true},
		{"starts with number", "1_runs", true},
		{"contains dash", "render-runs", true},
		{"contains dot", "db.runs", true},
		{"sql injection attempt", "runs; DROP TABLE users; --", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, `"trendplot_render_runs"`},
		{schema.MySQLBackend, "`trendplot_render_runs`"},
		{schema.PostgreSQLBackend, `"trendplot_render_runs"`},
		{schema.NoneBackend, `"trendplot_render_runs"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.want, quoteTableName(renderRunsTable, tt.backend))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(schema.SQLiteBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "$4", placeholder(schema.PostgreSQLBackend, 4))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6, time.FixedZone("CET", 3600))

	s, ok := formatTime(ts, schema.SQLiteBackend).(string)
	require.True(t, ok)
	assert.Equal(t, "2024-01-02T02:04:05.000000006Z", s)

	parsed, err := parseTime(s)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))

	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}

func TestUpStatements(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		t.Run(string(backend), func(t *testing.T) {
			statements, err := upStatements(backend)
			require.NoError(t, err)
			require.Len(t, statements, 2)
			assert.Contains(t, statements[0], renderRunsTable)
			assert.Contains(t, statements[1], seriesSummariesTable)
		})
	}

	_, err := upStatements(schema.NoneBackend)
	assert.Error(t, err)
}
