package core

import "github.com/huangsam/trendplot/schema"

// PlotColumns returns the candidates that can be drawn: present in the table
// with at least one non-missing value. Order follows candidates.
func PlotColumns(table schema.Table, candidates []string) []string {
	var out []string
	for _, c := range candidates {
		values, ok := table.Column(c)
		if !ok {
			continue
		}
		if countPresent(values) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func countPresent(values []float64) int {
	n := 0
	for _, v := range values {
		if !schema.IsMissing(v) {
			n++
		}
	}
	return n
}
