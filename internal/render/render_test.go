package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/trendplot/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func testSpec() schema.ChartSpec {
	m := schema.Missing
	times := []time.Time{day(0), day(1), day(2), day(3), day(4)}
	return schema.ChartSpec{
		Kind:     schema.ResultsChart,
		Title:    "Rust/Coreutils running GNU's testsuite",
		Subtitle: "nightly",
		Lines: []schema.SeriesLine{
			{
				Style: schema.MetricStyle(schema.TotalMetric),
				Series: schema.SmoothedSeries{
					Metric: schema.TotalMetric,
					Window: 3,
					Times:  times,
					Raw:    []float64{100, 110, 120, 130, 140},
					Values: []float64{105, 110, 120, 130, 135},
				},
			},
			{
				Style: schema.MetricStyle(schema.FailMetric),
				Series: schema.SmoothedSeries{
					Metric: schema.FailMetric,
					Window: 3,
					Times:  times,
					Raw:    []float64{10, m, m, m, 12},
					Values: []float64{10, m, m, m, 12},
				},
			},
		},
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return log
}

func TestNew(t *testing.T) {
	r, err := New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &GonumRenderer{}, r)

	r, err = New(schema.GoChartRenderer, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &GoChartRenderer{}, r)

	_, err = New("matplotlib", nil)
	assert.Error(t, err)
}

func TestRenderers_WriteImages(t *testing.T) {
	tests := []struct {
		name   string
		kind   schema.RendererKind
		format schema.ImageFormat
	}{
		{"gonum png", schema.GonumRenderer, schema.PNGFormat},
		{"gonum svg", schema.GonumRenderer, schema.SVGFormat},
		{"gochart png", schema.GoChartRenderer, schema.PNGFormat},
		{"gochart svg", schema.GoChartRenderer, schema.SVGFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.kind, quietLogger())
			require.NoError(t, err)

			style := schema.DefaultChartStyle()
			style.Format = tt.format
			style.DPI = 72
			style.ShowRaw = true
			style.ReferenceLines = true

			path := filepath.Join(t.TempDir(), "chart."+string(tt.format))
			require.NoError(t, r.Render(testSpec(), style, path))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			require.NotEmpty(t, data)
			if tt.format == schema.PNGFormat {
				assert.True(t, bytes.HasPrefix(data, pngMagic), "expected PNG header")
			} else {
				assert.Contains(t, string(data), "<svg")
			}
		})
	}
}

func TestRenderers_SinglePoint(t *testing.T) {
	spec := schema.ChartSpec{
		Kind:  schema.IndividualSizeChart,
		Title: `Size evolution of "cp" binary (kilobytes)`,
		Lines: []schema.SeriesLine{{
			Style: schema.SeriesStyle{Label: "cp", Color: schema.DefaultColor, Width: 1.5},
			Series: schema.SmoothedSeries{
				Metric: "cp",
				Window: 15,
				Times:  []time.Time{day(0)},
				Raw:    []float64{2000},
				Values: []float64{2000},
			},
		}},
	}

	for _, kind := range []schema.RendererKind{schema.GonumRenderer, schema.GoChartRenderer} {
		t.Run(string(kind), func(t *testing.T) {
			r, err := New(kind, quietLogger())
			require.NoError(t, err)
			style := schema.DefaultChartStyle()
			style.DPI = 72
			path := filepath.Join(t.TempDir(), "cp.png")
			require.NoError(t, r.Render(spec, style, path))
			assert.FileExists(t, path)
		})
	}
}

func TestRender_BadPath(t *testing.T) {
	r, err := New(schema.GonumRenderer, quietLogger())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "missing-dir", "chart.png")
	assert.Error(t, r.Render(testSpec(), schema.DefaultChartStyle(), path))
}

func TestSegments(t *testing.T) {
	m := schema.Missing
	times := []time.Time{day(0), day(1), day(2), day(3), day(4), day(5)}

	runs := segments(times, []float64{1, 2, m, 4, m, m})
	require.Len(t, runs, 2)
	assert.Equal(t, []schema.Point{{Time: day(0), Value: 1}, {Time: day(1), Value: 2}}, runs[0])
	assert.Equal(t, []schema.Point{{Time: day(3), Value: 4}}, runs[1])

	assert.Empty(t, segments(times, []float64{m, m, m, m, m, m}))
}

func TestReferenceLevels(t *testing.T) {
	style := schema.DefaultChartStyle()
	assert.Nil(t, referenceLevels(400, style), "disabled by default")

	style.ReferenceLines = true
	assert.Equal(t, []float64{300, 200}, referenceLevels(400, style))
	assert.Nil(t, referenceLevels(100, style), "max must exceed the floor")
}

func TestValueMax(t *testing.T) {
	spec := testSpec()
	assert.Equal(t, 135.0, valueMax(spec, false))
	assert.Equal(t, 140.0, valueMax(spec, true))
	assert.Equal(t, 0.0, valueMax(schema.ChartSpec{}, true))
}

func TestTimeSpan(t *testing.T) {
	first, last, ok := timeSpan(testSpec())
	require.True(t, ok)
	assert.Equal(t, day(0), first)
	assert.Equal(t, day(4), last)

	_, _, ok = timeSpan(schema.ChartSpec{})
	assert.False(t, ok)
}

func TestChartTitle(t *testing.T) {
	spec := schema.ChartSpec{Title: "Size evolution of Rust/Coreutils"}
	assert.Equal(t, spec.Title, chartTitle(spec, "\n"))
	spec.Subtitle = "main"
	assert.Equal(t, "Size evolution of Rust/Coreutils - main", chartTitle(spec, " - "))
}

func TestHexColor(t *testing.T) {
	c := hexColor(schema.TotalColor)
	assert.Equal(t, uint8(0x00), c.R)
	assert.Equal(t, uint8(0x66), c.G)
	assert.Equal(t, uint8(0xCC), c.B)
	assert.Equal(t, uint8(rawAlpha), faded(c).A)
}

func TestDateFormatter(t *testing.T) {
	format := dateFormatter("2006-01-02")
	assert.Equal(t, "2024-01-02", format(float64(day(1).UnixNano())))
	assert.Equal(t, "2024-01-03", format(day(2)))
	assert.Equal(t, "", format("nope"))
}
