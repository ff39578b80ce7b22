package core

import (
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/trendplot/schema"
)

// NormalizeOptions controls how a raw record becomes a table.
type NormalizeOptions struct {
	// Hint names the date format to try first. Empty means auto.
	Hint schema.DateHint

	// Columns are declared metric columns. Each one is present in the
	// output table even when no row carries it, with every value missing.
	Columns []string
}

// parsedEntry pairs a raw entry with its parsed timestamp until sorting is done.
type parsedEntry struct {
	row   schema.Row
	entry schema.RawEntry
}

// Normalize parses every key of raw into a UTC timestamp, coerces metric values
// to numbers and returns the rows sorted by time. Rows whose key cannot be
// parsed are dropped and listed in Table.Dropped after the keys the loader
// skipped. Ties keep input order.
//
// Column and group member order is first-seen order over the sorted rows,
// after any declared columns.
func Normalize(raw schema.RawRecord, opts NormalizeOptions) schema.Table {
	table := schema.Table{Groups: map[string][]string{}}
	table.Dropped = append(table.Dropped, raw.Skipped...)

	parsed := make([]parsedEntry, 0, len(raw.Entries))
	for _, entry := range raw.Entries {
		ts, err := ParseTimestamp(entry.Key, opts.Hint)
		if err != nil {
			table.Dropped = append(table.Dropped, entry.Key)
			continue
		}
		parsed = append(parsed, parsedEntry{
			row:   schema.Row{Time: ts, Key: entry.Key},
			entry: entry,
		})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].row.Time.Before(parsed[j].row.Time)
	})

	columnSeen := map[string]bool{}
	addColumn := func(name string) {
		if !columnSeen[name] {
			columnSeen[name] = true
			table.Columns = append(table.Columns, name)
		}
	}
	for _, c := range opts.Columns {
		addColumn(c)
	}
	memberSeen := map[string]map[string]bool{}

	for i := range parsed {
		entry := parsed[i].entry
		row := &parsed[i].row
		row.Values = make(map[string]float64, len(entry.MetricKeys))

		for _, name := range entry.MetricKeys {
			addColumn(name)
			row.Values[name] = coerce(entry.Metrics[name])
		}

		for _, group := range entry.GroupKeys {
			g := entry.Groups[group]
			if memberSeen[group] == nil {
				memberSeen[group] = map[string]bool{}
				table.Groups[group] = nil
			}
			members := make(map[string]float64, len(g.Names))
			for _, name := range g.Names {
				if !memberSeen[group][name] {
					memberSeen[group][name] = true
					table.Groups[group] = append(table.Groups[group], name)
				}
				members[name] = coerce(g.Values[name])
			}
			if row.Groups == nil {
				row.Groups = map[string]map[string]float64{}
			}
			row.Groups[group] = members
		}
	}

	table.Rows = make([]schema.Row, len(parsed))
	for i := range parsed {
		row := parsed[i].row
		for _, c := range table.Columns {
			if _, ok := row.Values[c]; !ok {
				row.Values[c] = schema.Missing
			}
		}
		table.Rows[i] = row
	}

	return table
}

// coerce turns a raw value into a number. Anything non-numeric is missing, never zero.
func coerce(v schema.RawValue) float64 {
	switch v.Kind {
	case schema.RawNumber, schema.RawString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return schema.Missing
		}
		return f
	default:
		return schema.Missing
	}
}

// Denormalize re-serializes a table into a raw record keyed by the original keys.
// Normalizing the result with the same options yields an identical table.
func Denormalize(table schema.Table) schema.RawRecord {
	groups := make([]string, 0, len(table.Groups))
	for g := range table.Groups {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	raw := schema.RawRecord{Entries: make([]schema.RawEntry, 0, len(table.Rows))}
	for _, row := range table.Rows {
		entry := schema.RawEntry{
			Key:     row.Key,
			Metrics: make(map[string]schema.RawValue, len(table.Columns)),
		}
		for _, c := range table.Columns {
			entry.MetricKeys = append(entry.MetricKeys, c)
			entry.Metrics[c] = rawFromFloat(row.Values[c])
		}
		for _, group := range groups {
			members, ok := row.Groups[group]
			if !ok {
				continue
			}
			g := schema.RawGroup{Values: map[string]schema.RawValue{}}
			for _, name := range table.Groups[group] {
				if v, ok := members[name]; ok {
					g.Names = append(g.Names, name)
					g.Values[name] = rawFromFloat(v)
				}
			}
			if entry.Groups == nil {
				entry.Groups = map[string]schema.RawGroup{}
			}
			entry.GroupKeys = append(entry.GroupKeys, group)
			entry.Groups[group] = g
		}
		raw.Entries = append(raw.Entries, entry)
	}
	return raw
}

func rawFromFloat(v float64) schema.RawValue {
	if schema.IsMissing(v) {
		return schema.RawValue{Kind: schema.RawNull, Text: "null"}
	}
	return schema.RawValue{Kind: schema.RawNumber, Text: strconv.FormatFloat(v, 'g', -1, 64)}
}
