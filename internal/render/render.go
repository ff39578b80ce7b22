// Package render draws chart specs to PNG or SVG files.
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Colors shared by both renderers.
const (
	gridColorHex      = "#E5E7EB"
	referenceColorHex = "#D1D5DB"
	rawAlpha          = 90
)

// New returns the renderer for kind. An empty kind selects gonum.
func New(kind schema.RendererKind, log *logrus.Logger) (contract.Renderer, error) {
	if log == nil {
		log = contract.NewLogger(false)
	}
	switch kind {
	case "", schema.GonumRenderer:
		return &GonumRenderer{log: log}, nil
	case schema.GoChartRenderer:
		return &GoChartRenderer{log: log}, nil
	default:
		return nil, fmt.Errorf("unknown renderer '%s'", kind)
	}
}

// segments splits a series at missing values into runs of consecutive samples,
// so that gaps stay gaps instead of dropping to zero.
func segments(times []time.Time, values []float64) [][]schema.Point {
	var out [][]schema.Point
	var current []schema.Point
	for i, v := range values {
		if schema.IsMissing(v) {
			if len(current) > 0 {
				out = append(out, current)
				current = nil
			}
			continue
		}
		current = append(current, schema.Point{Time: times[i], Value: v})
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// hexColor parses "#RRGGBB".
func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// faded returns c with the alpha used for raw overlays.
func faded(c drawing.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: rawAlpha}
}

// valueMax returns the largest value drawn by spec, or 0 when nothing is drawn.
func valueMax(spec schema.ChartSpec, showRaw bool) float64 {
	maxY := math.Inf(-1)
	visit := func(values []float64) {
		for _, v := range values {
			if !schema.IsMissing(v) && v > maxY {
				maxY = v
			}
		}
	}
	for _, line := range spec.Lines {
		visit(line.Series.Values)
		if showRaw {
			visit(line.Series.Raw)
		}
	}
	if math.IsInf(maxY, -1) {
		return 0
	}
	return maxY
}

// timeSpan returns the first and last timestamp across all lines.
func timeSpan(spec schema.ChartSpec) (first, last time.Time, ok bool) {
	for _, line := range spec.Lines {
		for _, t := range line.Series.Times {
			if !ok || t.Before(first) {
				first = t
			}
			if !ok || t.After(last) {
				last = t
			}
			ok = true
		}
	}
	return first, last, ok
}

// referenceLevels returns the 75% and 50% guides when they are enabled and maxY is large enough.
func referenceLevels(maxY float64, style schema.ChartStyle) []float64 {
	if !style.ReferenceLines || maxY <= style.ReferenceFloor {
		return nil
	}
	return []float64{maxY * 0.75, maxY * 0.5}
}

// chartTitle joins the title and the optional subtitle with sep.
func chartTitle(spec schema.ChartSpec, sep string) string {
	if spec.Subtitle == "" {
		return spec.Title
	}
	return spec.Title + sep + spec.Subtitle
}

// writeFile creates path and hands it to write, reporting close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
