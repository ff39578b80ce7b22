package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/huangsam/trendplot/schema"
	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// GonumRenderer draws charts with gonum/plot.
type GonumRenderer struct {
	log *logrus.Logger
}

// Render implements contract.Renderer.
func (g *GonumRenderer) Render(spec schema.ChartSpec, style schema.ChartStyle, path string) error {
	p := plot.New()
	p.Title.Text = chartTitle(spec, "\n")
	p.X.Label.Text = style.XLabel
	p.Y.Label.Text = style.YLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: style.DateLayout}
	p.X.Tick.Label.Rotation = style.TickRotation * math.Pi / 180
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true
	p.Legend.Left = true

	if style.ShowGrid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = nrgba(hexColor(gridColorHex))
		grid.Horizontal.Color = nrgba(hexColor(gridColorHex))
		p.Add(grid)
	}

	for _, line := range spec.Lines {
		c := hexColor(line.Style.Color)
		if style.ShowRaw {
			raw := draw.LineStyle{Color: nrgba(faded(c)), Width: vg.Points(1)}
			if err := addGonumSeries(p, segments(line.Series.Times, line.Series.Raw), raw, ""); err != nil {
				return err
			}
		}
		ls := draw.LineStyle{
			Color:  nrgba(c),
			Width:  vg.Points(line.Style.Width),
			Dashes: gonumDashes(line.Style),
		}
		if err := addGonumSeries(p, segments(line.Series.Times, line.Series.Values), ls, line.Style.Label); err != nil {
			return err
		}
	}

	maxY := valueMax(spec, style.ShowRaw)
	if first, last, ok := timeSpan(spec); ok {
		for _, level := range referenceLevels(maxY, style) {
			ref, err := plotter.NewLine(plotter.XYs{
				{X: float64(first.Unix()), Y: level},
				{X: float64(last.Unix()), Y: level},
			})
			if err != nil {
				return fmt.Errorf("failed to build reference line: %w", err)
			}
			ref.LineStyle = draw.LineStyle{
				Color:  nrgba(hexColor(referenceColorHex)),
				Width:  vg.Points(0.8),
				Dashes: []vg.Length{vg.Points(4), vg.Points(4)},
			}
			p.Add(ref)
		}
	}

	p.Y.Min = 0
	if p.Y.Max <= 0 || math.IsInf(p.Y.Max, 0) {
		p.Y.Max = 1
	}

	g.log.WithFields(logrus.Fields{
		"renderer": "gonum",
		"path":     path,
		"lines":    len(spec.Lines),
		"format":   style.Format,
	}).Debug("rendering chart")

	w := vg.Length(style.WidthInches) * vg.Inch
	h := vg.Length(style.HeightInches) * vg.Inch
	switch style.Format {
	case schema.SVGFormat:
		c := vgsvg.New(w, h)
		p.Draw(draw.New(c))
		return writeFile(path, func(out io.Writer) error {
			_, err := c.WriteTo(out)
			return err
		})
	default:
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(style.DPI))
		p.Draw(draw.New(c))
		return writeFile(path, func(out io.Writer) error {
			_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(out)
			return err
		})
	}
}

// addGonumSeries adds one line per run of present samples. Single samples get
// a glyph so they stay visible. Only the first run is added to the legend.
func addGonumSeries(p *plot.Plot, runs [][]schema.Point, ls draw.LineStyle, label string) error {
	for i, run := range runs {
		xys := make(plotter.XYs, len(run))
		for j, pt := range run {
			xys[j] = plotter.XY{X: float64(pt.Time.Unix()), Y: pt.Value}
		}

		var thumb plot.Thumbnailer
		if len(xys) == 1 {
			s, err := plotter.NewScatter(xys)
			if err != nil {
				return fmt.Errorf("failed to build point: %w", err)
			}
			s.GlyphStyle.Color = ls.Color
			s.GlyphStyle.Radius = vg.Points(2)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(s)
			thumb = s
		} else {
			l, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("failed to build line: %w", err)
			}
			l.LineStyle = ls
			p.Add(l)
			thumb = l
		}
		if i == 0 && label != "" {
			p.Legend.Add(label, thumb)
		}
	}
	return nil
}

// gonumDashes converts dash lengths given in multiples of the stroke width.
func gonumDashes(s schema.SeriesStyle) []vg.Length {
	if len(s.Dashes) == 0 {
		return nil
	}
	out := make([]vg.Length, len(s.Dashes))
	for i, d := range s.Dashes {
		out[i] = vg.Points(d * s.Width)
	}
	return out
}

// nrgba converts a parsed hex color for gonum, which expects alpha-aware colors.
func nrgba(c drawing.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
