package core

import (
	"math"
	"testing"
	"time"

	"github.com/huangsam/trendplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowBounds(t *testing.T) {
	tests := []struct {
		window      int
		left, right int
	}{
		{1, 0, 0},
		{2, 1, 0},
		{3, 1, 1},
		{4, 2, 1},
		{15, 7, 7},
	}
	for _, tt := range tests {
		left, right := windowBounds(tt.window)
		assert.Equal(t, tt.left, left, "window %d", tt.window)
		assert.Equal(t, tt.right, right, "window %d", tt.window)
	}
}

func TestRollingMean(t *testing.T) {
	nan := schema.Missing
	tests := []struct {
		name   string
		values []float64
		window int
		want   []float64
	}{
		{"two points wide window", []float64{100, 110}, 15, []float64{105, 105}},
		{"window one is identity", []float64{3, 1, 4, 1, 5}, 1, []float64{3, 1, 4, 1, 5}},
		{"single row", []float64{42}, 15, []float64{42}},
		{"centered odd window", []float64{1, 2, 3, 4, 5}, 3, []float64{1.5, 2, 3, 4, 4.5}},
		{"even window leans left", []float64{1, 2, 3}, 2, []float64{1, 1.5, 2.5}},
		{"missing excluded", []float64{1, nan, 3}, 3, []float64{1, 2, 3}},
		{"missing with window one", []float64{1, nan, 3}, 1, []float64{1, nan, 3}},
		{"all missing", []float64{nan, nan}, 3, []float64{nan, nan}},
		{"empty", []float64{}, 3, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RollingMean(tt.values, tt.window)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				if schema.IsMissing(tt.want[i]) {
					assert.True(t, schema.IsMissing(got[i]), "position %d", i)
					continue
				}
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "position %d", i)
			}
		})
	}
}

func TestRollingMean_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -1, math.MinInt} {
		_, err := RollingMean([]float64{1}, w)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	}
}

func TestSmooth(t *testing.T) {
	table := Normalize(parseRaw(t, `{
  "2024-01-01": {"total": 100},
  "2024-01-02": {"total": 110, "fail": 1}
}`), NormalizeOptions{})

	series, err := Smooth(table, "total", DefaultSmoothWindow)
	require.NoError(t, err)
	assert.Equal(t, "total", series.Metric)
	assert.Equal(t, 15, series.Window)
	assert.Equal(t, []float64{100, 110}, series.Raw)
	assert.Equal(t, []float64{105, 105}, series.Values)
	assert.True(t, series.Times[1].Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Len(t, series.Points(), 2)

	fail, err := Smooth(table, "fail", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, fail.MissingCount())
	assert.Len(t, fail.RawPoints(), 1)

	_, err = Smooth(table, "skip", 3)
	assert.ErrorIs(t, err, ErrMissingMetric)

	_, err = Smooth(table, "total", 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
