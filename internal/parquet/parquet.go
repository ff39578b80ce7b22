// Package parquet provides data structures and functions for exporting trendplot
// tables and render history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/huangsam/trendplot/schema"
	"github.com/parquet-go/parquet-go"
)

// TablePoint is one cell of a normalized table in long format.
type TablePoint struct {
	// Time is the normalized UTC timestamp of the row
	Time time.Time `parquet:"time,snappy"`

	// Key is the source key the timestamp was parsed from
	Key string `parquet:"key,snappy"`

	// Series is the metric name, or "<group>/<member>" for nested values
	Series string `parquet:"series,snappy"`

	// Value is the numeric value (nullable when missing)
	Value *float64 `parquet:"value,optional,snappy"`
}

// RenderRun represents a single chart command run with metadata.
// This struct maps to the trendplot_render_runs database table.
type RenderRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// ChartsWritten is the number of images written in this run
	ChartsWritten int32 `parquet:"charts_written,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// SeriesSummary represents the statistics of one drawn series in a run.
// This struct maps to the trendplot_series_summaries database table.
type SeriesSummary struct {
	// RunID references the parent render run
	RunID int64 `parquet:"run_id,snappy"`

	// Series is the metric or binary name
	Series string `parquet:"series,snappy"`

	// Chart is the chart kind the series was drawn in
	Chart string `parquet:"chart,snappy"`

	// RecordTime is when the series was drawn
	RecordTime time.Time `parquet:"record_time,snappy"`

	// Points is the number of rows in the series
	Points int32 `parquet:"points,snappy"`

	// Missing is the number of rows without a value
	Missing int32 `parquet:"missing,snappy"`

	// MinValue and MaxValue bound the raw values
	MinValue float64 `parquet:"min_value,snappy"`
	MaxValue float64 `parquet:"max_value,snappy"`

	// LastRaw is the raw value of the latest row (nullable when missing)
	LastRaw *float64 `parquet:"last_raw,optional,snappy"`

	// LastSmoothed is the smoothed value of the latest row (nullable when missing)
	LastSmoothed *float64 `parquet:"last_smoothed,optional,snappy"`

	// Window is the rolling window used for smoothing
	Window int32 `parquet:"smooth_window,snappy"`
}

// WriteTablePoints writes table cells to w.
func WriteTablePoints(data []TablePoint, w io.Writer) error {
	return writeRows(data, w)
}

// WriteRenderRunsParquet writes a slice of RenderRun structs to a Parquet file.
func WriteRenderRunsParquet(data []RenderRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteSeriesSummariesParquet writes a slice of SeriesSummary structs to a Parquet file.
func WriteSeriesSummariesParquet(data []SeriesSummary, outputPath string) error {
	return writeFile(data, outputPath)
}

// writeFile creates outputPath and writes data into it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return writeRows(data, file)
}

// writeRows encodes data with a schema inferred from the struct tags of T.
func writeRows[T any](data []T, w io.Writer) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertTable flattens a normalized table into long format, one point per
// row and column, then one per row and group member.
func ConvertTable(table schema.Table) []TablePoint {
	var result []TablePoint
	for _, row := range table.Rows {
		for _, c := range table.Columns {
			v, ok := row.Values[c]
			if !ok {
				v = schema.Missing
			}
			result = append(result, TablePoint{Time: row.Time, Key: row.Key, Series: c, Value: schema.FloatPtr(v)})
		}
		for _, group := range sortedGroups(table) {
			for _, member := range table.Groups[group] {
				v := schema.Missing
				if members, ok := row.Groups[group]; ok {
					if mv, ok := members[member]; ok {
						v = mv
					}
				}
				result = append(result, TablePoint{
					Time:   row.Time,
					Key:    row.Key,
					Series: group + "/" + member,
					Value:  schema.FloatPtr(v),
				})
			}
		}
	}
	return result
}

// sortedGroups returns the group names of table in a stable order.
func sortedGroups(table schema.Table) []string {
	groups := make([]string, 0, len(table.Groups))
	for g := range table.Groups {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// ConvertRenderRunRecords converts schema.RenderRunRecord to RenderRun for Parquet export.
func ConvertRenderRunRecords(records []schema.RenderRunRecord) []RenderRun {
	result := make([]RenderRun, len(records))
	for i, record := range records {
		result[i] = RenderRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			ChartsWritten: record.ChartsWritten,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSeriesSummaryRecords converts schema.SeriesSummaryRecord to SeriesSummary for Parquet export.
func ConvertSeriesSummaryRecords(records []schema.SeriesSummaryRecord) []SeriesSummary {
	result := make([]SeriesSummary, len(records))
	for i, record := range records {
		result[i] = SeriesSummary{
			RunID:        record.RunID,
			Series:       record.Series,
			Chart:        record.Chart,
			RecordTime:   record.RecordTime,
			Points:       record.Points,
			Missing:      record.Missing,
			MinValue:     record.MinValue,
			MaxValue:     record.MaxValue,
			LastRaw:      record.LastRaw,
			LastSmoothed: record.LastSmoothed,
			Window:       record.Window,
		}
	}
	return result
}
