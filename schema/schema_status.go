package schema

import "time"

// HistoryStatus represents the status of the render history store.
type HistoryStatus struct {
	Backend            string           `json:"backend"`
	Connected          bool             `json:"connected"`
	TotalRuns          int              `json:"total_runs"`
	LastRunID          int64            `json:"last_run_id"`
	LastRunTime        time.Time        `json:"last_run_time"`
	OldestRunTime      time.Time        `json:"oldest_run_time"`
	TotalChartsWritten int              `json:"total_charts_written"`
	TableSizes         map[string]int64 `json:"table_sizes"`
}

// SeriesSummary is the per-series statistic kept for each render run.
type SeriesSummary struct {
	RecordTime   time.Time
	Chart        ChartKind
	Series       string
	Points       int
	Missing      int
	MinValue     float64
	MaxValue     float64
	LastRaw      float64
	LastSmoothed float64
	Window       int
}

// RenderRunRecord represents a row from the trendplot_render_runs table.
type RenderRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	ChartsWritten int32
	ConfigParams  *string
}

// SeriesSummaryRecord represents a row from the trendplot_series_summaries table.
type SeriesSummaryRecord struct {
	RunID        int64
	Series       string
	Chart        string
	RecordTime   time.Time
	Points       int32
	Missing      int32
	MinValue     float64
	MaxValue     float64
	LastRaw      *float64
	LastSmoothed *float64
	Window       int32
}
