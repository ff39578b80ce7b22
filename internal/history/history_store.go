package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// driverFor maps a backend to its database/sql driver name.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// openDB opens and pings the database of the backend. An empty SQLite
// connection string selects the default history file.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, "", err
	}

	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct: user:password@tcp(host:port)/dbname?parseTime=true"
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct: host=localhost port=5432 user=postgres dbname=mydb"
		default:
			connDetail = "Check that the directory of the database file is writable."
		}
		return nil, "", fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, driverName, nil
}

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, driverName, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createHistoryTables applies every up migration. They are idempotent, so a
// database managed with `history migrate` is left as it is.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	statements, err := upStatements(backend)
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// disabled reports whether the store is a no-op.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new render run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(renderRunsTable, hs.backend)
	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert render run: %w", err)
	}
	return runID, nil
}

// EndRun updates the render run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, chartsWritten int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(renderRunsTable, hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	startTime, err := hs.scanTime(hs.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, charts_written = %s WHERE run_id = %s`,
		quotedTableName,
		placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3), placeholder(hs.backend, 4))
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, chartsWritten, runID); err != nil {
		return fmt.Errorf("failed to update render run: %w", err)
	}
	return nil
}

// RecordSeriesSummary stores the summary statistics of one plotted series.
// Missing last values are stored as NULL.
func (hs *HistoryStoreImpl) RecordSeriesSummary(runID int64, summary schema.SeriesSummary) error {
	if hs.disabled() {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, series, chart, record_time, points, missing,
		                min_value, max_value, last_raw, last_smoothed, smooth_window)
		VALUES (%s)
	`, quoteTableName(seriesSummariesTable, hs.backend), placeholders(hs.backend, 11))
	args := []any{
		runID, summary.Series, string(summary.Chart), formatTime(summary.RecordTime, hs.backend),
		summary.Points, summary.Missing, summary.MinValue, summary.MaxValue,
		schema.FloatPtr(summary.LastRaw), schema.FloatPtr(summary.LastSmoothed), summary.Window,
	}
	if _, err := hs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert series summary: %w", err)
	}
	return nil
}

// scanTime reads one timestamp column, which SQLite stores as text.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend != schema.SQLiteBackend {
		var t time.Time
		err := row.Scan(&t)
		return t, err
	}
	var s string
	if err := row.Scan(&s); err != nil {
		return time.Time{}, err
	}
	return parseTime(s)
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	runsTable := quoteTableName(renderRunsTable, hs.backend)
	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		row = hs.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}
		lastRunTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		// Get oldest run time
		oldestRunTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(charts_written), 0) FROM %s", runsTable))
		if err := row.Scan(&status.TotalChartsWritten); err != nil {
			return status, fmt.Errorf("failed to get total charts written: %w", err)
		}
	}

	// Get table sizes
	for _, table := range []string{renderRunsTable, seriesSummariesTable} {
		row = hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRenderRuns retrieves all render runs from the store.
func (hs *HistoryStoreImpl) GetAllRenderRuns() ([]schema.RenderRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, charts_written, config_params FROM %s ORDER BY run_id",
		quoteTableName(renderRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query render runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RenderRunRecord
	for rows.Next() {
		var record schema.RenderRunRecord
		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.ChartsWritten, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan render run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.ChartsWritten, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan render run: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating render runs: %w", err)
	}
	return results, nil
}

// GetAllSeriesSummaries retrieves all series summaries from the store.
func (hs *HistoryStoreImpl) GetAllSeriesSummaries() ([]schema.SeriesSummaryRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, series, chart, record_time, points, missing,
    min_value, max_value, last_raw, last_smoothed, smooth_window
    FROM %s ORDER BY run_id, series`, quoteTableName(seriesSummariesTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query series summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SeriesSummaryRecord
	for rows.Next() {
		var record schema.SeriesSummaryRecord
		var recordTimeStr string
		dest := []any{&record.RunID, &record.Series, &record.Chart, &record.RecordTime, &record.Points, &record.Missing,
			&record.MinValue, &record.MaxValue, &record.LastRaw, &record.LastSmoothed, &record.Window}
		if hs.backend == schema.SQLiteBackend {
			dest[3] = &recordTimeStr
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan series summary: %w", err)
		}
		if hs.backend == schema.SQLiteBackend {
			if record.RecordTime, err = parseTime(recordTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse record_time: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series summaries: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
