package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/internal/loader"
	"github.com/huangsam/trendplot/internal/outwriter"
	"github.com/huangsam/trendplot/schema"
	"github.com/sirupsen/logrus"
)

// Chart titles.
const (
	resultsTitleFormat        = "Rust/Coreutils running %s's testsuite"
	sizeTitle                 = "Size evolution of Rust/Coreutils"
	individualSizeTitleFormat = `Size evolution of "%s" binary (kilobytes)`
)

// chartRun carries the state shared by the steps of one chart command.
type chartRun struct {
	cfg      *contract.Config
	kind     schema.ChartKind
	renderer contract.Renderer
	log      *logrus.Logger
	quiet    bool

	store   contract.HistoryStore
	runID   int64
	results []schema.ChartResult
}

// startRun prints the run header and opens a render history entry when a store is configured.
func startRun(ctx context.Context, cfg *contract.Config, kind schema.ChartKind, mgr contract.HistoryManager, renderer contract.Renderer) *chartRun {
	run := &chartRun{
		cfg:      cfg,
		kind:     kind,
		renderer: renderer,
		log:      contract.NewLogger(cfg.Verbose),
		quiet:    shouldSuppressHeader(ctx),
	}
	if !run.quiet {
		outwriter.LogChartHeader(cfg, kind)
	}

	if mgr == nil {
		return run
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return run
	}
	configParams := map[string]any{
		"chart":         string(kind),
		"input":         cfg.InputPath,
		"title":         cfg.Title,
		"renderer":      string(cfg.Renderer),
		"format":        string(cfg.Format),
		"smooth_window": cfg.SmoothWindow,
		"date_format":   string(cfg.DateHint),
	}
	runID, err := store.BeginRun(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Render history initialization failed", err)
		return run
	}
	run.store = store
	run.runID = runID
	return run
}

// finish closes the render history entry.
func (r *chartRun) finish() {
	if r.store == nil || r.runID <= 0 {
		return
	}
	if err := r.store.EndRun(r.runID, time.Now(), len(r.results)); err != nil {
		contract.LogWarn("Failed to finalize render history", err)
	}
}

// loadTable reads and normalizes the input, then dumps the table before anything is drawn.
func (r *chartRun) loadTable() (schema.Table, error) {
	raw, err := loader.LoadFile(r.cfg.InputPath)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to load input: %w", err)
	}

	table := Normalize(raw, NormalizeOptions{Hint: r.cfg.DateHint})
	for _, key := range raw.Skipped {
		contract.LogWarn("Dropping row", fmt.Errorf("%w for %q", loader.ErrNotObject, key))
	}
	for _, key := range table.Dropped[len(raw.Skipped):] {
		contract.LogWarn("Dropping row", fmt.Errorf("%w: %q", ErrMalformedTimestamp, key))
	}
	r.log.WithFields(logrus.Fields{
		"rows":    table.Len(),
		"dropped": len(table.Dropped),
		"columns": strings.Join(table.Columns, ","),
	}).Debug("normalized input")

	if !r.quiet {
		if err := outwriter.PrintTable(table, r.cfg); err != nil {
			return schema.Table{}, err
		}
	}
	if table.Len() == 0 {
		return table, fmt.Errorf("no rows with a parseable date in %s", r.cfg.InputPath)
	}
	return table, nil
}

// draw renders one chart to path and records its series in the history store.
func (r *chartRun) draw(spec schema.ChartSpec, path string, statuses []schema.SeriesStatus) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := r.renderer.Render(spec, r.cfg.ChartStyle(), path); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	r.results = append(r.results, schema.ChartResult{Kind: spec.Kind, Path: path, Series: statuses})
	if !r.quiet {
		outwriter.LogChartWritten(path)
	}

	if r.store == nil || r.runID <= 0 {
		return nil
	}
	for _, line := range spec.Lines {
		summary := summarizeSeries(line.Series, spec.Kind)
		if err := r.store.RecordSeriesSummary(r.runID, summary); err != nil {
			contract.LogWarn("Failed to record series summary", err)
		}
	}
	return nil
}

// report prints the per-series outcome of the run.
func (r *chartRun) report(statuses []schema.SeriesStatus) error {
	if r.quiet {
		return nil
	}
	return outwriter.PrintSeriesStatus(statuses, r.cfg)
}

// runResultsChart draws total, fail, pass, error and skip counts for one test suite.
func runResultsChart(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, renderer contract.Renderer) ([]schema.ChartResult, error) {
	if cfg.Title == "" {
		return nil, errors.New("a title is required for the results chart")
	}
	run := startRun(ctx, cfg, schema.ResultsChart, mgr, renderer)
	defer run.finish()

	table, err := run.loadTable()
	if err != nil {
		return nil, err
	}
	lines, statuses, err := metricLines(table, schema.ResultMetrics, cfg.SmoothWindow, run.log)
	if err != nil {
		return nil, err
	}
	spec := schema.ChartSpec{
		Kind:     schema.ResultsChart,
		Title:    fmt.Sprintf(resultsTitleFormat, cfg.Title),
		Subtitle: cfg.Subtitle,
		Lines:    lines,
	}
	path := filepath.Join(cfg.OutputDir, chartFileName(cfg.Title+"-results", cfg.Format))
	if err := run.draw(spec, path, statuses); err != nil {
		return nil, err
	}
	return run.results, run.report(statuses)
}

// runSizeChart draws the multiple-binaries and multicall binary sizes.
func runSizeChart(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, renderer contract.Renderer) ([]schema.ChartResult, error) {
	run := startRun(ctx, cfg, schema.SizeChart, mgr, renderer)
	defer run.finish()

	table, err := run.loadTable()
	if err != nil {
		return nil, err
	}
	lines, statuses, err := metricLines(table, schema.SizeMetrics, cfg.SmoothWindow, run.log)
	if err != nil {
		return nil, err
	}
	spec := schema.ChartSpec{
		Kind:     schema.SizeChart,
		Title:    sizeTitle,
		Subtitle: cfg.Subtitle,
		Lines:    lines,
	}
	path := filepath.Join(cfg.OutputDir, chartFileName("size-results", cfg.Format))
	if err := run.draw(spec, path, statuses); err != nil {
		return nil, err
	}
	return run.results, run.report(statuses)
}

// runIndividualSizeCharts draws one chart per binary of the nested sizes group.
// Binaries without any data are skipped with a warning.
func runIndividualSizeCharts(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, renderer contract.Renderer) ([]schema.ChartResult, error) {
	run := startRun(ctx, cfg, schema.IndividualSizeChart, mgr, renderer)
	defer run.finish()

	table, err := run.loadTable()
	if err != nil {
		return nil, err
	}
	fanned, err := FanOut(table, schema.SizesGroup, cfg.SmoothWindow)
	if err != nil {
		return nil, err
	}

	statuses := make([]schema.SeriesStatus, 0, len(fanned.Series)+len(fanned.Empty))
	dir := filepath.Join(cfg.OutputDir, schema.IndividualSizeDir)
	for _, binary := range fanned.Series {
		style := schema.SeriesStyle{Label: binary.Name, Color: schema.DefaultColor, Width: 1.5}
		spec := schema.ChartSpec{
			Kind:     schema.IndividualSizeChart,
			Title:    fmt.Sprintf(individualSizeTitleFormat, binary.Name),
			Subtitle: cfg.Subtitle,
			Lines:    []schema.SeriesLine{{Style: style, Series: binary.Smoothed}},
		}
		status := schema.SeriesStatus{
			Name:   binary.Name,
			Status: contract.DrawnValue,
			Points: len(binary.Smoothed.RawPoints()),
		}
		path := filepath.Join(dir, chartFileName(contract.SanitizeFileName(binary.Name), cfg.Format))
		if err := run.draw(spec, path, []schema.SeriesStatus{status}); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	for _, name := range fanned.Empty {
		contract.LogWarn("Skipping binary", EmptySeriesError(name))
		statuses = append(statuses, schema.SeriesStatus{Name: name, Status: contract.EmptyValue})
	}
	return run.results, run.report(statuses)
}

// metricLines smooths every candidate metric that has data and styles it.
// Candidates that are absent or all missing are reported as skipped.
func metricLines(table schema.Table, candidates []string, window int, log *logrus.Logger) ([]schema.SeriesLine, []schema.SeriesStatus, error) {
	drawable := map[string]bool{}
	for _, c := range PlotColumns(table, candidates) {
		drawable[c] = true
	}

	var lines []schema.SeriesLine
	statuses := make([]schema.SeriesStatus, 0, len(candidates))
	for _, metric := range candidates {
		if !drawable[metric] {
			log.WithField("metric", metric).Debug("series skipped")
			statuses = append(statuses, schema.SeriesStatus{Name: metric, Status: contract.SkippedValue})
			continue
		}
		series, err := Smooth(table, metric, window)
		if err != nil {
			return nil, nil, err
		}
		log.WithFields(logrus.Fields{
			"metric":  metric,
			"window":  window,
			"missing": series.MissingCount(),
		}).Debug("series smoothed")
		lines = append(lines, schema.SeriesLine{Style: schema.MetricStyle(metric), Series: series})
		statuses = append(statuses, schema.SeriesStatus{
			Name:   metric,
			Status: contract.DrawnValue,
			Points: len(series.RawPoints()),
		})
	}
	if len(lines) == 0 {
		return nil, statuses, fmt.Errorf("%w: none of %s has data", ErrMissingMetric, strings.Join(candidates, ", "))
	}
	return lines, statuses, nil
}

// summarizeSeries computes the statistics stored for one drawn series.
func summarizeSeries(series schema.SmoothedSeries, kind schema.ChartKind) schema.SeriesSummary {
	summary := schema.SeriesSummary{
		RecordTime:   time.Now(),
		Chart:        kind,
		Series:       series.Metric,
		Points:       series.Len(),
		Missing:      series.MissingCount(),
		MinValue:     math.Inf(1),
		MaxValue:     math.Inf(-1),
		LastRaw:      schema.Missing,
		LastSmoothed: schema.Missing,
		Window:       series.Window,
	}
	for _, v := range series.Raw {
		if schema.IsMissing(v) {
			continue
		}
		summary.MinValue = math.Min(summary.MinValue, v)
		summary.MaxValue = math.Max(summary.MaxValue, v)
	}
	if summary.Missing == summary.Points {
		summary.MinValue, summary.MaxValue = 0, 0
	}
	if n := len(series.Raw); n > 0 {
		summary.LastRaw = series.Raw[n-1]
	}
	if n := len(series.Values); n > 0 {
		summary.LastSmoothed = series.Values[n-1]
	}
	return summary
}

// chartFileName appends the image extension to base.
func chartFileName(base string, format schema.ImageFormat) string {
	if format == "" {
		format = schema.PNGFormat
	}
	return contract.SanitizeFileName(base) + "." + string(format)
}
