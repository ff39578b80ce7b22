package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/internal/parquet"
)

// ExecuteHistoryExport exports the global store's history to Parquet files
// named after outputFile.
func ExecuteHistoryExport(w io.Writer, outputFile string) error {
	return ExportHistory(w, Manager.GetHistoryStore(), outputFile)
}

// ExportHistory writes <outputFile>.render_runs.parquet and
// <outputFile>.series_summaries.parquet from store.
func ExportHistory(w io.Writer, store contract.HistoryStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("render history is disabled. Set --history-backend to export")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no render history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total render runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total series summaries: %d\n", status.TableSizes[seriesSummariesTable])

	runs, err := store.GetAllRenderRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve render runs: %w", err)
	}
	summaries, err := store.GetAllSeriesSummaries()
	if err != nil {
		return fmt.Errorf("failed to retrieve series summaries: %w", err)
	}

	parquetRuns := parquet.ConvertRenderRunRecords(runs)
	parquetSummaries := parquet.ConvertSeriesSummaryRecords(summaries)

	runsFile := outputFile + ".render_runs.parquet"
	if err := parquet.WriteRenderRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write render runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d render runs to: %s\n", len(parquetRuns), runsFile)

	summariesFile := outputFile + ".series_summaries.parquet"
	if err := parquet.WriteSeriesSummariesParquet(parquetSummaries, summariesFile); err != nil {
		return fmt.Errorf("failed to write series summaries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d series summaries to: %s\n", len(parquetSummaries), summariesFile)

	return nil
}
