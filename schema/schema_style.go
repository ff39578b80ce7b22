package schema

// Series colors shared by every renderer.
const (
	TotalColor     = "#0066CC"
	PassColor      = "#10B981"
	FailColor      = "#EF4444"
	ErrorColor     = "#F59E0B"
	SkipColor      = "#8B5CF6"
	SizeColor      = "#6366F1"
	MultisizeColor = "#10B981"
	DefaultColor   = "#10B981"
)

// SeriesStyle describes how a single line is drawn.
type SeriesStyle struct {
	Label  string
	Color  string    // hex color, "#RRGGBB"
	Width  float64   // stroke width in points
	Dashes []float64 // on/off lengths in multiples of Width; empty means solid
}

// ChartStyle carries every presentation setting for one render call.
// Renderers read it and never keep it between calls.
type ChartStyle struct {
	Format         ImageFormat
	WidthInches    float64
	HeightInches   float64
	DPI            int
	XLabel         string
	YLabel         string
	DateLayout     string  // tick label layout
	TickRotation   float64 // degrees
	ShowGrid       bool
	ShowRaw        bool // draw the unsmoothed series under each line
	ReferenceLines bool // dotted 75% and 50% guides when the max exceeds ReferenceFloor
	ReferenceFloor float64
}

// DefaultChartStyle returns the baseline presentation settings.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		Format:         PNGFormat,
		WidthInches:    6.4,
		HeightInches:   4.8,
		DPI:            199,
		XLabel:         "Date",
		YLabel:         "Value",
		DateLayout:     "2006-01-02",
		TickRotation:   45,
		ShowGrid:       true,
		ReferenceFloor: 100,
	}
}

// SeriesLine binds a smoothed series to its drawing style.
type SeriesLine struct {
	Style  SeriesStyle
	Series SmoothedSeries
}

// ChartSpec is everything a renderer needs to draw one image, apart from style.
type ChartSpec struct {
	Kind     ChartKind
	Title    string
	Subtitle string
	Lines    []SeriesLine
}

// MetricStyle returns the line style for a known metric.
// Unknown metrics get the default color and a solid line.
func MetricStyle(metric string) SeriesStyle {
	s := SeriesStyle{Label: metric, Color: DefaultColor, Width: 1.5}
	switch metric {
	case TotalMetric:
		s.Color = TotalColor
	case FailMetric:
		s.Color = FailColor
		s.Dashes = []float64{2, 1}
	case PassMetric:
		s.Color = PassColor
		s.Dashes = []float64{4, 1}
	case ErrorMetric:
		s.Color = ErrorColor
		s.Dashes = []float64{6, 2}
	case SkipMetric:
		s.Color = SkipColor
		s.Dashes = []float64{8, 3}
	case SizeMetric:
		s.Color = SizeColor
		s.Dashes = []float64{2, 1}
		s.Label = "Size: multiple binaries (byte)"
	case MultisizeMetric:
		s.Color = MultisizeColor
		s.Dashes = []float64{4, 1}
		s.Label = "Size: multicall binary (byte)"
	}
	return s
}
