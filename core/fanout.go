package core

import (
	"fmt"

	"github.com/huangsam/trendplot/schema"
)

// FanOutResult holds the per-binary series of a nested size table.
type FanOutResult struct {
	Series []schema.BinarySeries // binaries with at least one point, first-seen order
	Empty  []string              // binaries with no point at all
}

// Names returns every binary name, drawable or not, in first-seen order.
func (r FanOutResult) Names() []string {
	names := make([]string, 0, len(r.Series)+len(r.Empty))
	for _, s := range r.Series {
		names = append(names, s.Name)
	}
	return append(names, r.Empty...)
}

// FanOut splits a nested group such as "sizes" into one single-column table
// and smoothed series per member. Each table only holds the rows where the
// member has a value, so smoothing never spans dates the member was absent.
// Members without any value are listed in Empty. Names are kept verbatim,
// even when they are unsafe as file names.
func FanOut(table schema.Table, group string, window int) (FanOutResult, error) {
	var result FanOutResult
	names, ok := table.Groups[group]
	if !ok {
		return result, fmt.Errorf("%w: group %q", ErrMissingMetric, group)
	}
	if window < 1 {
		return result, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}

	for _, name := range names {
		sub := schema.Table{
			Columns: []string{name},
			Groups:  map[string][]string{},
		}
		for _, row := range table.Rows {
			v, ok := row.Groups[group][name]
			if !ok || schema.IsMissing(v) {
				continue
			}
			sub.Rows = append(sub.Rows, schema.Row{
				Time:   row.Time,
				Key:    row.Key,
				Values: map[string]float64{name: v},
			})
		}
		if len(sub.Rows) == 0 {
			result.Empty = append(result.Empty, name)
			continue
		}

		smoothed, err := Smooth(sub, name, window)
		if err != nil {
			return result, err
		}
		result.Series = append(result.Series, schema.BinarySeries{
			Name:     name,
			Table:    sub,
			Smoothed: smoothed,
		})
	}
	return result, nil
}

// EmptySeriesError reports a binary skipped for lack of data.
func EmptySeriesError(name string) error {
	return fmt.Errorf("%w: no data found for '%s'", ErrEmptySeries, name)
}
