package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/internal/history"
	"github.com/huangsam/trendplot/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendConfig reads and validates the history backend settings.
func historyBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	// Get history-related config values
	backend, err := contract.ParseHistoryBackend(viper.GetString("history-backend"))
	if err != nil {
		return "", "", err
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config
	if err := history.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize render history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	// For SQLite, use default path if no connection string provided
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on render history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by chart commands. This avoids input file validation
// and chart option processing for simple bookkeeping operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the render history of chart runs",
	Long: `Manage the render history that records every chart run.

When --history-backend is set, each chart run stores its configuration,
timing and a summary of every plotted series. This gives a cheap audit
trail of how the tracked metrics moved between renders.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics and connection info
  export  - Export the history to Parquet files
  clear   - Remove all recorded history
  migrate - Apply or roll back schema migrations

Examples:
  # Check history status of the default SQLite database
  trendplot history status --history-backend sqlite

  # Export the history for offline analysis
  trendplot history export --history-backend sqlite --output-file history`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display render history statistics and connection details",
	Long: `Show detailed information about the render history.

Displays:
- Backend type and connection status
- Total number of recorded runs and charts written
- Last run ID and timestamp
- Row counts of the history tables

Examples:
  # Check SQLite history status
  trendplot history status --history-backend sqlite

  # Check PostgreSQL history status
  TRENDPLOT_HISTORY_BACKEND=postgresql TRENDPLOT_HISTORY_DB_CONNECT="host=localhost dbname=trendplot" trendplot history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetHistoryStore()
		if store == nil {
			history.PrintHistoryStatus(os.Stdout, schema.HistoryStatus{Backend: string(schema.NoneBackend)})
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports render history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export render history to Parquet files",
	Long: `Export all render runs and series summaries to Parquet files.

Two files are written next to each other:
  <output-file>.render_runs.parquet
  <output-file>.series_summaries.parquet

Parquet files can be loaded directly by pandas, DuckDB or Spark.

Examples:
  # Export SQLite history
  trendplot history export --history-backend sqlite --output-file history

  # Export MySQL history
  TRENDPLOT_HISTORY_BACKEND=mysql TRENDPLOT_HISTORY_DB_CONNECT="user:pass@tcp(localhost:3306)/trendplot" trendplot history export --output-file history`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(os.Stdout, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export render history", err)
		}
	},
}

// historyClearCmd clears the render history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded render history",
	Long: `Delete all render history from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

Examples:
  # Clear SQLite history
  trendplot history clear --history-backend sqlite

  # Clear PostgreSQL history (set connection string via env variable)
  TRENDPLOT_HISTORY_BACKEND=postgresql TRENDPLOT_HISTORY_DB_CONNECT="..." trendplot history clear`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// The migrate setup resolves the SQLite file, so the connection string doubles as its path
		if err := history.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear render history", err)
		}
		fmt.Println("Render history cleared successfully.")
	},
}

// historyMigrateCmd manages database schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage render history schema migrations",
	Long: `Apply or roll back schema migrations of the render history database.

By default, migrates to the latest version. Use --target-version to
migrate to a specific version, or 0 to roll back every migration.

Examples:
  # Migrate SQLite history to the latest version
  trendplot history migrate --history-backend sqlite

  # Roll back to the first schema version
  trendplot history migrate --history-backend sqlite --target-version 1`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate render history", err)
		}
		if targetVersion < 0 {
			fmt.Println("Render history migrated to the latest version.")
		} else {
			fmt.Printf("Render history migrated to version %d.\n", targetVersion)
		}
	},
}
