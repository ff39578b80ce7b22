// Package cmd defines the command-line interface for trendplot.
package cmd

import (
	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(individualSizeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("format", string(schema.PNGFormat), "Image format: png or svg")
	rootCmd.PersistentFlags().StringP("output-dir", "d", ".", "Directory where chart images are written")
	rootCmd.PersistentFlags().IntP("smooth-window", "w", contract.DefaultSmoothWindow, "Rolling mean window size")
	rootCmd.PersistentFlags().Bool("show-raw", false, "Overlay the raw series under the smoothed lines")
	rootCmd.PersistentFlags().String("date-format", string(schema.AutoDates), "Date format tried first: auto or rfc2822 or iso8601 or a Go time layout")
	rootCmd.PersistentFlags().String("renderer", string(schema.GonumRenderer), "Chart renderer: gonum or gochart")
	rootCmd.PersistentFlags().Int("dpi", contract.DefaultDPI, "Image resolution in dots per inch")
	rootCmd.PersistentFlags().Float64("width", contract.DefaultWidthInches, "Image width in inches")
	rootCmd.PersistentFlags().Float64("height", contract.DefaultHeightInches, "Image height in inches")
	rootCmd.PersistentFlags().String("subtitle", "", "Chart subtitle")
	rootCmd.PersistentFlags().Bool("reference-lines", false, "Draw 75% and 50% guides when the maximum exceeds 100")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Table dump format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write the table dump to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("term-width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", "", "Render history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
