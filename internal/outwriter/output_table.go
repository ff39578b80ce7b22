package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/internal/parquet"
	"github.com/huangsam/trendplot/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// missingCell is how a missing value looks in the text table.
const missingCell = "-"

// PrintTable dumps the normalized table, dispatching based on the output format configured.
func PrintTable(table schema.Table, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONTable(table, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVTable(table, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetTable(table, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeTextTable(os.Stdout, table, cfg); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONTable handles opening the file and calling the JSON writer.
func printJSONTable(table schema.Table, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteJSONTable(w, table)
	}, "Wrote JSON")
}

// printCSVTable handles opening the file and calling the CSV writer.
func printCSVTable(table schema.Table, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVTable(w, table, cfg.Precision)
	}, "Wrote CSV")
}

// printParquetTable writes the table in long format to the output file.
func printParquetTable(table schema.Table, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return parquet.WriteTablePoints(parquet.ConvertTable(table), w)
	}, "Wrote Parquet")
}

// tableColumn is one value column of a flattened table.
type tableColumn struct {
	group string // empty for scalar metrics
	name  string
}

// header returns the CSV header of the column.
func (c tableColumn) header() string {
	if c.group == "" {
		return c.name
	}
	return c.group + "/" + c.name
}

// value returns the value of the column in row, or Missing.
func (c tableColumn) value(row schema.Row) float64 {
	if c.group == "" {
		if v, ok := row.Values[c.name]; ok {
			return v
		}
		return schema.Missing
	}
	if members, ok := row.Groups[c.group]; ok {
		if v, ok := members[c.name]; ok {
			return v
		}
	}
	return schema.Missing
}

// flattenColumns lists the scalar metrics, then every group member with groups sorted by name.
func flattenColumns(table schema.Table) []tableColumn {
	cols := make([]tableColumn, 0, len(table.Columns))
	for _, c := range table.Columns {
		cols = append(cols, tableColumn{name: c})
	}
	for _, group := range sortedGroups(table) {
		for _, member := range table.Groups[group] {
			cols = append(cols, tableColumn{group: group, name: member})
		}
	}
	return cols
}

func sortedGroups(table schema.Table) []string {
	groups := make([]string, 0, len(table.Groups))
	for g := range table.Groups {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// writeTextTable prints the table using the tablewriter API.
func writeTextTable(w io.Writer, table schema.Table, cfg *contract.Config) error {
	tbl := tablewriter.NewWriter(w)
	cols := flattenColumns(table)
	fmtValue := newValueFormatter(cfg.Precision, missingCell)

	// 1. Define Headers
	cellWidth := GetMaxTableCellWidth(cfg, len(cols))
	headers := []string{"Date"}
	for _, c := range cols {
		headers = append(headers, contract.TruncateText(c.name, cellWidth))
	}
	tbl.Header(headers)

	// 2. Configure Alignment
	tbl.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	data := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		row := []string{r.Time.Format(DateTimeFormat)}
		for _, c := range cols {
			row = append(row, fmtValue(c.value(r)))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	if err := tbl.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d rows across %d series (%d dropped)\n", len(table.Rows), len(cols), len(table.Dropped))
	return err
}

// writeCSVTable writes a header and one record per row. Missing values are empty.
func writeCSVTable(w io.Writer, table schema.Table, precision int) error {
	cols := flattenColumns(table)
	fmtValue := newValueFormatter(precision, "")
	header := []string{"timestamp", "key"}
	for _, c := range cols {
		header = append(header, c.header())
	}

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range table.Rows {
			record := []string{r.Time.Format(time.RFC3339Nano), r.Key}
			for _, c := range cols {
				record = append(record, fmtValue(c.value(r)))
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// WriteJSONTable writes the table back in its input shape: an object keyed by
// RFC 3339 timestamps in row order. Values keep full precision so the output
// loads into the same table again. A row whose timestamp collides with an
// earlier row is keyed by its source key instead, or by a padded timestamp
// when that key is taken too.
func WriteJSONTable(w io.Writer, table schema.Table) error {
	doc := orderedmap.New[string, *orderedmap.OrderedMap[string, any]](
		orderedmap.WithCapacity[string, *orderedmap.OrderedMap[string, any]](len(table.Rows)),
	)
	groups := sortedGroups(table)

	for _, r := range table.Rows {
		entry := orderedmap.New[string, any]()
		for _, c := range table.Columns {
			v, ok := r.Values[c]
			if !ok {
				v = schema.Missing
			}
			entry.Set(c, schema.FloatPtr(v))
		}
		for _, group := range groups {
			members, ok := r.Groups[group]
			if !ok {
				continue
			}
			nested := orderedmap.New[string, *float64]()
			for _, name := range table.Groups[group] {
				if v, ok := members[name]; ok {
					nested.Set(name, schema.FloatPtr(v))
				}
			}
			entry.Set(group, nested)
		}

		doc.Set(jsonRowKey(r, func(key string) bool {
			_, taken := doc.Get(key)
			return taken
		}), entry)
	}
	return writeJSON(w, doc)
}

// jsonRowKey picks a key for r that is not taken yet and still parses back to r.Time.
// It tries the RFC 3339 timestamp, then the source key, then the timestamp
// padded with extra fractional zeros.
func jsonRowKey(r schema.Row, taken func(string) bool) string {
	utc := r.Time.UTC()
	if key := utc.Format(time.RFC3339Nano); !taken(key) {
		return key
	}
	if r.Key != "" && !taken(r.Key) {
		return r.Key
	}
	base := fmt.Sprintf("%s.%09d", utc.Format("2006-01-02T15:04:05"), utc.Nanosecond())
	for zeros := 1; ; zeros++ {
		if key := base + strings.Repeat("0", zeros) + "Z"; !taken(key) {
			return key
		}
	}
}
