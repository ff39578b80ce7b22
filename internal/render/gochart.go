package render

import (
	"io"
	"time"

	"github.com/huangsam/trendplot/schema"
	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
)

// pointsPerInch converts stroke widths given in points to pixels at the chart DPI.
const pointsPerInch = 72.0

// GoChartRenderer draws charts with go-chart.
type GoChartRenderer struct {
	log *logrus.Logger
}

// Render implements contract.Renderer.
func (g *GoChartRenderer) Render(spec schema.ChartSpec, style schema.ChartStyle, path string) error {
	scale := float64(style.DPI) / pointsPerInch

	var series []chart.Series
	var legend []chart.Series
	for _, line := range spec.Lines {
		c := hexColor(line.Style.Color)
		if style.ShowRaw {
			raw := chart.Style{StrokeColor: faded(c), StrokeWidth: scale}
			series = append(series, timeSeries("", segments(line.Series.Times, line.Series.Raw), raw)...)
		}
		st := chart.Style{
			StrokeColor:     c,
			StrokeWidth:     line.Style.Width * scale,
			StrokeDashArray: goChartDashes(line.Style, scale),
		}
		series = append(series, timeSeries(line.Style.Label, segments(line.Series.Times, line.Series.Values), st)...)
		legend = append(legend, chart.TimeSeries{Name: line.Style.Label, Style: st})
	}

	maxY := valueMax(spec, style.ShowRaw)
	if first, last, ok := timeSpan(spec); ok {
		if !last.After(first) {
			last = first.Add(time.Second)
		}
		for _, level := range referenceLevels(maxY, style) {
			series = append(series, chart.TimeSeries{
				XValues: []time.Time{first, last},
				YValues: []float64{level, level},
				Style: chart.Style{
					StrokeColor:     hexColor(referenceColorHex),
					StrokeWidth:     0.8 * scale,
					StrokeDashArray: []float64{4 * scale, 4 * scale},
				},
			})
		}
	}
	if maxY <= 0 {
		maxY = 1
	}

	graph := chart.Chart{
		Title:  chartTitle(spec, " - "),
		Width:  int(style.WidthInches * float64(style.DPI)),
		Height: int(style.HeightInches * float64(style.DPI)),
		DPI:    float64(style.DPI),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           style.XLabel,
			ValueFormatter: dateFormatter(style.DateLayout),
			TickStyle:      chart.Style{TextRotationDegrees: style.TickRotation},
		},
		YAxis: chart.YAxis{
			Name:  style.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.05},
		},
		Series: series,
	}
	if style.ShowGrid {
		graph.YAxis.GridMajorStyle = chart.Style{StrokeColor: hexColor(gridColorHex), StrokeWidth: scale}
	}
	legendChart := chart.Chart{Series: legend}
	graph.Elements = []chart.Renderable{chart.Legend(&legendChart)}

	g.log.WithFields(logrus.Fields{
		"renderer": "gochart",
		"path":     path,
		"lines":    len(spec.Lines),
		"format":   style.Format,
	}).Debug("rendering chart")

	provider := chart.PNG
	if style.Format == schema.SVGFormat {
		provider = chart.SVG
	}
	return writeFile(path, func(out io.Writer) error {
		return graph.Render(provider, out)
	})
}

// timeSeries turns runs of samples into go-chart series. A run of one sample is
// padded to two X values one second apart, which go-chart needs to draw it.
// Only the first run carries the name.
func timeSeries(name string, runs [][]schema.Point, st chart.Style) []chart.Series {
	out := make([]chart.Series, 0, len(runs))
	for i, run := range runs {
		xs := make([]time.Time, len(run))
		ys := make([]float64, len(run))
		for j, pt := range run {
			xs[j] = pt.Time
			ys[j] = pt.Value
		}
		runStyle := st
		if len(run) == 1 {
			xs = append(xs, xs[0].Add(time.Second))
			ys = append(ys, ys[0])
			runStyle.DotWidth = 3
			runStyle.DotColor = st.StrokeColor
		}
		ts := chart.TimeSeries{XValues: xs, YValues: ys, Style: runStyle}
		if i == 0 {
			ts.Name = name
		}
		out = append(out, ts)
	}
	return out
}

// goChartDashes converts dash lengths given in multiples of the stroke width to pixels.
func goChartDashes(s schema.SeriesStyle, scale float64) []float64 {
	if len(s.Dashes) == 0 {
		return nil
	}
	out := make([]float64, len(s.Dashes))
	for i, d := range s.Dashes {
		out[i] = d * s.Width * scale
	}
	return out
}

// dateFormatter formats go-chart time values, which are nanoseconds since the epoch, in UTC.
func dateFormatter(layout string) chart.ValueFormatter {
	return func(v any) string {
		switch typed := v.(type) {
		case float64:
			return time.Unix(0, int64(typed)).UTC().Format(layout)
		case time.Time:
			return typed.UTC().Format(layout)
		default:
			return ""
		}
	}
}
