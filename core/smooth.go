package core

import (
	"fmt"

	"github.com/huangsam/trendplot/schema"
	"gonum.org/v1/gonum/stat"
)

// DefaultSmoothWindow is the rolling window used when none is configured.
const DefaultSmoothWindow = 15

// windowBounds returns how many neighbours a centered window of size w
// reaches to the left and right of a position. Odd windows are symmetric;
// even windows lean one sample to the left.
func windowBounds(w int) (left, right int) {
	right = (w - 1) / 2
	left = w - 1 - right
	return left, right
}

// RollingMean computes a centered rolling mean over values.
// Missing values are left out of both the sum and the count. A position is
// missing only when its whole window is missing.
func RollingMean(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	left, right := windowBounds(window)
	out := make([]float64, len(values))
	buf := make([]float64, 0, window)
	for i := range values {
		lo := max(0, i-left)
		hi := min(len(values)-1, i+right)
		buf = buf[:0]
		for j := lo; j <= hi; j++ {
			if !schema.IsMissing(values[j]) {
				buf = append(buf, values[j])
			}
		}
		if len(buf) == 0 {
			out[i] = schema.Missing
			continue
		}
		out[i] = stat.Mean(buf, nil)
	}
	return out, nil
}

// Smooth returns the centered rolling mean of one metric column.
// It fails with ErrMissingMetric when the column is absent from the table.
func Smooth(table schema.Table, metric string, window int) (schema.SmoothedSeries, error) {
	raw, ok := table.Column(metric)
	if !ok {
		return schema.SmoothedSeries{}, fmt.Errorf("%w: %q", ErrMissingMetric, metric)
	}
	values, err := RollingMean(raw, window)
	if err != nil {
		return schema.SmoothedSeries{}, err
	}
	return schema.SmoothedSeries{
		Metric: metric,
		Window: window,
		Times:  table.Times(),
		Raw:    raw,
		Values: values,
	}, nil
}
