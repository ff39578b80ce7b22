package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/trendplot/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRenderRuns() []RenderRun {
	now := time.Now()
	start := now.Add(-2 * time.Minute)
	end := now.Add(-time.Minute)
	duration := int32(end.Sub(start).Milliseconds())
	config := `{"chart":"results","smooth_window":15}`
	return []RenderRun{
		{RunID: 1, StartTime: start, EndTime: &end, RunDurationMs: &duration, ChartsWritten: 1, ConfigParams: &config},
		{RunID: 2, StartTime: now},
	}
}

func sampleSeriesSummaries() []SeriesSummary {
	raw := 110.0
	smoothed := 105.0
	return []SeriesSummary{
		{RunID: 1, Series: "total", Chart: "results", RecordTime: time.Now(), Points: 2, MinValue: 100, MaxValue: 110, LastRaw: &raw, LastSmoothed: &smoothed, Window: 15},
		{RunID: 1, Series: "error", Chart: "results", RecordTime: time.Now(), Points: 2, Missing: 1, Window: 15},
	}
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name     string
		model    any
		expected []string
	}{
		{"table point", new(TablePoint), []string{"time", "key", "series", "value"}},
		{"render run", new(RenderRun), []string{"run_id", "start_time", "end_time", "run_duration_ms", "charts_written", "config_params"}},
		{"series summary", new(SeriesSummary), []string{
			"run_id", "series", "chart", "record_time", "points", "missing",
			"min_value", "max_value", "last_raw", "last_smoothed", "smooth_window",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.expected {
				col, ok := s.Lookup(colName)
				require.True(t, ok, "Column %s should exist in schema", colName)
				require.NotNil(t, col, "Column %s should not be nil", colName)
			}
		})
	}
}

func TestWriteRenderRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "render_runs.parquet")
	data := sampleRenderRuns()

	require.NoError(t, WriteRenderRunsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[RenderRun](file)
	defer reader.Close()

	readData := make([]RenderRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, data[0].RunID, readData[0].RunID)
	assert.Equal(t, data[0].ChartsWritten, readData[0].ChartsWritten)
	require.NotNil(t, readData[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Nanosecond)
	require.NotNil(t, readData[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *readData[0].ConfigParams)

	// Nullable fields survive as nil
	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestWriteSeriesSummariesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "series_summaries.parquet")
	data := sampleSeriesSummaries()

	require.NoError(t, WriteSeriesSummariesParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[SeriesSummary](file)
	defer reader.Close()

	readData := make([]SeriesSummary, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, "total", readData[0].Series)
	assert.InDelta(t, 110.0, readData[0].MaxValue, 0.001)
	require.NotNil(t, readData[0].LastSmoothed)
	assert.InDelta(t, 105.0, *readData[0].LastSmoothed, 0.001)
	assert.Nil(t, readData[1].LastRaw)
	assert.Equal(t, int32(1), readData[1].Missing)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRenderRunsParquet([]RenderRun{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteSeriesSummariesParquet(sampleSeriesSummaries(), "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}

func TestConvertTable(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.AddDate(0, 0, 1)
	table := schema.Table{
		Columns: []string{"total"},
		Groups:  map[string][]string{"sizes": {"ls", "cp"}},
		Rows: []schema.Row{
			{Time: t1, Key: "2024-01-01", Values: map[string]float64{"total": 100}, Groups: map[string]map[string]float64{"sizes": {"ls": 1000, "cp": 2000}}},
			{Time: t2, Key: "2024-01-02", Values: map[string]float64{"total": schema.Missing}, Groups: map[string]map[string]float64{"sizes": {"ls": 1100}}},
		},
	}

	points := ConvertTable(table)
	require.Len(t, points, 6)

	assert.Equal(t, "total", points[0].Series)
	require.NotNil(t, points[0].Value)
	assert.Equal(t, 100.0, *points[0].Value)
	assert.Equal(t, "sizes/ls", points[1].Series)
	assert.Equal(t, "sizes/cp", points[2].Series)

	assert.Equal(t, "2024-01-02", points[3].Key)
	assert.Nil(t, points[3].Value, "missing total is null")
	assert.Nil(t, points[5].Value, "cp absent from the second row is null")
}

func TestWriteTablePoints_RoundTrip(t *testing.T) {
	v := 42.0
	data := []TablePoint{{Time: time.Unix(0, 0).UTC(), Key: "k", Series: "total", Value: &v}}

	var buf bytes.Buffer
	require.NoError(t, WriteTablePoints(data, &buf))

	reader := parquet.NewGenericReader[TablePoint](bytes.NewReader(buf.Bytes()))
	defer reader.Close()
	readData := make([]TablePoint, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 1, n)
	require.NotNil(t, readData[0].Value)
	assert.Equal(t, 42.0, *readData[0].Value)
}

func TestConvertRecords(t *testing.T) {
	end := time.Now()
	runs := ConvertRenderRunRecords([]schema.RenderRunRecord{{RunID: 7, EndTime: &end, ChartsWritten: 3}})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, int32(3), runs[0].ChartsWritten)
	assert.Equal(t, &end, runs[0].EndTime)

	raw := 1.5
	summaries := ConvertSeriesSummaryRecords([]schema.SeriesSummaryRecord{{RunID: 7, Series: "ls", Chart: "individual-size", LastRaw: &raw, Window: 15}})
	require.Len(t, summaries, 1)
	assert.Equal(t, "ls", summaries[0].Series)
	assert.Equal(t, &raw, summaries[0].LastRaw)
	assert.Equal(t, int32(15), summaries[0].Window)
}
