package cmd

import (
	"github.com/huangsam/trendplot/core"
	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
	"github.com/spf13/cobra"
)

// chartSetupWrapper runs the shared setup only when the positional arguments
// are present. Short invocations fall through to the usage message.
func chartSetupWrapper(required int) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < required {
			return nil
		}
		return sharedSetupWrapper(cmd, args)
	}
}

// runChart prints usage when arguments are missing and draws the chart otherwise.
func runChart(kind schema.ChartKind, required int, executor core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if len(args) < required {
			_ = cmd.Usage()
			return
		}
		cfg.Chart = kind
		if err := executor(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot draw chart", err)
		}
	}
}

// resultsCmd draws the test-suite results chart.
var resultsCmd = &cobra.Command{
	Use:   "results <json> <title>",
	Short: "Plot smoothed pass/skip/fail/error counts of a test-suite history",
	Long: `Plot the smoothed outcome counts of a test-suite history.

The input is a JSON object whose keys are dates and whose values map
outcome names (total, pass, skip, fail, error) to counts. Dates may be
RFC 2822 (as printed by git log) or ISO 8601; --date-format tries a
specific layout first. Every outcome is smoothed with a centered rolling
mean of --smooth-window points.

The chart is written to <output-dir>/<title>-results.<format>.

Examples:
  # Chart the GNU testsuite history
  trendplot results gnu-result.json gnu

  # Wider smoothing, raw series in the background, SVG output
  trendplot results gnu-result.json gnu -w 30 --show-raw --format svg

  # Also dump the normalized table as CSV
  trendplot results gnu-result.json gnu --output csv --output-file gnu.csv`,
	Args:    cobra.MaximumNArgs(2),
	PreRunE: chartSetupWrapper(2),
	Run:     runChart(schema.ResultsChart, 2, core.ExecuteResultsChart),
}

// sizeCmd draws the aggregate binary size chart.
var sizeCmd = &cobra.Command{
	Use:   "size <json>",
	Short: "Plot the smoothed total and multicall binary sizes",
	Long: `Plot the smoothed size evolution of a build.

The input is a JSON object whose keys are dates and whose values hold
"size" (size of the multiple binaries) and "multisize" (size of the
multicall binary), plus an optional "sizes" map of per-binary sizes.
Values are plotted in the unit they are recorded in.

The chart is written to <output-dir>/size-results.<format>.

Examples:
  # Chart the size history
  trendplot size size-result.json

  # Draw with the gochart renderer and 75%/50% guides
  trendplot size size-result.json --renderer gochart --reference-lines`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: chartSetupWrapper(1),
	Run:     runChart(schema.SizeChart, 1, core.ExecuteSizeChart),
}

// individualSizeCmd draws one chart per binary.
var individualSizeCmd = &cobra.Command{
	Use:   "individual-size <json>",
	Short: "Plot one smoothed size chart per binary",
	Long: `Plot the smoothed size of every binary listed under "sizes".

Each binary gets its own chart in <output-dir>/individual-size-results/,
named after the binary with path separators replaced. Binaries without a
single recorded size are reported and skipped.

Examples:
  # One chart per binary
  trendplot individual-size size-result.json

  # SVG charts in a custom directory
  trendplot individual-size size-result.json --format svg -d charts`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: chartSetupWrapper(1),
	Run:     runChart(schema.IndividualSizeChart, 1, core.ExecuteIndividualSizeCharts),
}
