// Package schema has configs, models and global variables for all parts of trendplot.
package schema

import (
	"math"
	"time"
)

// Missing marks a metric value that was absent, null or non-numeric in the input.
// It is never equal to zero and must be tested with IsMissing.
var Missing = math.NaN()

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// RawKind is the JSON kind of an uncoerced input value.
type RawKind int

// Raw value kinds recognized by the loader.
const (
	RawNull RawKind = iota
	RawNumber
	RawString
	RawBool
	RawOther
)

// RawValue is a single metric value as read from input, before numeric coercion.
type RawValue struct {
	Kind RawKind
	Text string // the raw token, unquoted for strings
}

// RawGroup is a nested mapping inside an entry, such as "sizes" keyed by binary name.
type RawGroup struct {
	Names  []string // member names in input order
	Values map[string]RawValue
}

// RawEntry is one timestamp-keyed object of the input document.
type RawEntry struct {
	Key        string
	MetricKeys []string // scalar metric names in input order
	Metrics    map[string]RawValue
	GroupKeys  []string // nested group names in input order
	Groups     map[string]RawGroup
}

// RawRecord is the whole input document with its key order preserved.
type RawRecord struct {
	Entries []RawEntry
	Skipped []string // top-level keys whose value is not an object
}

// Row is a single normalized observation.
type Row struct {
	Time   time.Time
	Key    string                        // source key the timestamp was parsed from
	Values map[string]float64            // metric -> value or Missing
	Groups map[string]map[string]float64 // group -> member -> value or Missing
}

// Table is a normalized, time-sorted series of rows.
type Table struct {
	Columns []string            // scalar metric columns in first-seen order
	Groups  map[string][]string // group -> member names in first-seen order
	Rows    []Row
	Dropped []string // source keys that failed timestamp parsing
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is a scalar column of the table.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the values of a scalar column, one per row.
func (t Table) Column(name string) ([]float64, bool) {
	if !t.HasColumn(name) {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		v, ok := r.Values[name]
		if !ok {
			v = Missing
		}
		out[i] = v
	}
	return out, true
}

// Times returns the row timestamps in order.
func (t Table) Times() []time.Time {
	out := make([]time.Time, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Time
	}
	return out
}

// Point is a single non-missing sample of a series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// SmoothedSeries is a centered rolling mean of one table column.
type SmoothedSeries struct {
	Metric string      `json:"metric"`
	Window int         `json:"window"`
	Times  []time.Time `json:"times"`
	Raw    []float64   `json:"-"`
	Values []float64   `json:"-"`
}

// Len returns the number of positions in the series.
func (s SmoothedSeries) Len() int {
	return len(s.Values)
}

// Points returns the non-missing smoothed samples.
func (s SmoothedSeries) Points() []Point {
	return collectPoints(s.Times, s.Values)
}

// RawPoints returns the non-missing raw samples.
func (s SmoothedSeries) RawPoints() []Point {
	return collectPoints(s.Times, s.Raw)
}

// MissingCount returns how many raw positions are missing.
func (s SmoothedSeries) MissingCount() int {
	n := 0
	for _, v := range s.Raw {
		if IsMissing(v) {
			n++
		}
	}
	return n
}

func collectPoints(times []time.Time, values []float64) []Point {
	var out []Point
	for i, v := range values {
		if IsMissing(v) {
			continue
		}
		out = append(out, Point{Time: times[i], Value: v})
	}
	return out
}

// BinarySeries is the per-binary slice of a nested size table.
type BinarySeries struct {
	Name     string
	Table    Table
	Smoothed SmoothedSeries
}
