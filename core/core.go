// Package core has the time series normalization, smoothing and chart pipelines.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/internal/render"
	"github.com/huangsam/trendplot/schema"
)

// Conditions reported by the normalizer and smoother. Callers match them with errors.Is.
var (
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrMissingMetric      = errors.New("missing metric")
	ErrEmptySeries        = errors.New("empty series")
	ErrInvalidWindow      = errors.New("invalid smoothing window")
)

// ExecutorFunc defines the function signature for executing the different chart commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ExecuteResultsChart draws the test-suite results chart for one project.
// It serves as the main entry point for the 'results' command.
func ExecuteResultsChart(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	renderer, err := render.New(cfg.Renderer, contract.NewLogger(cfg.Verbose))
	if err != nil {
		return err
	}
	_, err = runResultsChart(ctx, cfg, mgr, renderer)
	return err
}

// ExecuteSizeChart draws the aggregate binary size chart.
// It serves as the main entry point for the 'size' command.
func ExecuteSizeChart(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	renderer, err := render.New(cfg.Renderer, contract.NewLogger(cfg.Verbose))
	if err != nil {
		return err
	}
	_, err = runSizeChart(ctx, cfg, mgr, renderer)
	return err
}

// ExecuteIndividualSizeCharts draws one size chart per binary found in the nested sizes group.
// It serves as the main entry point for the 'individual-size' command.
func ExecuteIndividualSizeCharts(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	renderer, err := render.New(cfg.Renderer, contract.NewLogger(cfg.Verbose))
	if err != nil {
		return err
	}
	_, err = runIndividualSizeCharts(ctx, cfg, mgr, renderer)
	return err
}

// GetChartResults draws the chart selected by cfg.Chart and returns the images written.
// It backs callers that need the results rather than console output, such as the MCP server.
func GetChartResults(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) ([]schema.ChartResult, error) {
	renderer, err := render.New(cfg.Renderer, contract.NewLogger(cfg.Verbose))
	if err != nil {
		return nil, err
	}
	switch cfg.Chart {
	case schema.ResultsChart:
		return runResultsChart(ctx, cfg, mgr, renderer)
	case schema.SizeChart:
		return runSizeChart(ctx, cfg, mgr, renderer)
	case schema.IndividualSizeChart:
		return runIndividualSizeCharts(ctx, cfg, mgr, renderer)
	default:
		return nil, fmt.Errorf("unknown chart '%s'", cfg.Chart)
	}
}
