// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/trendplot/schema"
)

// Renderer draws one chart to an image file.
// Style is passed on every call so that no presentation state outlives a render.
type Renderer interface {
	// Render writes spec to path using the given style. The image encoding
	// follows style.Format.
	Render(spec schema.ChartSpec, style schema.ChartStyle, path string) error
}

// HistoryManager defines the interface for managing history stores.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking render runs and series summaries.
type HistoryStore interface {
	// BeginRun creates a new render run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the render run with completion data
	EndRun(runID int64, endTime time.Time, chartsWritten int) error

	// RecordSeriesSummary stores the summary statistics of one plotted series
	RecordSeriesSummary(runID int64, summary schema.SeriesSummary) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRenderRuns returns every stored render run
	GetAllRenderRuns() ([]schema.RenderRunRecord, error)

	// GetAllSeriesSummaries returns every stored series summary
	GetAllSeriesSummaries() ([]schema.SeriesSummaryRecord, error)

	// Close closes the underlying connection
	Close() error
}
