package schema

import "time"

// SeriesPointOutput is one position of a smoothed series in JSON form.
// Nil pointers mark missing values.
type SeriesPointOutput struct {
	Time     time.Time `json:"time"`
	Raw      *float64  `json:"raw"`
	Smoothed *float64  `json:"smoothed"`
}

// SeriesOutput is the JSON form of a SmoothedSeries.
type SeriesOutput struct {
	Metric string              `json:"metric"`
	Window int                 `json:"window"`
	Points []SeriesPointOutput `json:"points"`
}

// BinaryInfo describes one binary found in a nested size table.
type BinaryInfo struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Empty  bool   `json:"empty"`
}

// ToSeriesOutput converts a SmoothedSeries into its JSON form.
func ToSeriesOutput(s SmoothedSeries) SeriesOutput {
	out := SeriesOutput{
		Metric: s.Metric,
		Window: s.Window,
		Points: make([]SeriesPointOutput, len(s.Values)),
	}
	for i := range s.Values {
		p := SeriesPointOutput{Time: s.Times[i]}
		if i < len(s.Raw) {
			p.Raw = FloatPtr(s.Raw[i])
		}
		p.Smoothed = FloatPtr(s.Values[i])
		out.Points[i] = p
	}
	return out
}

// FloatPtr returns nil for Missing and a pointer to v otherwise.
func FloatPtr(v float64) *float64 {
	if IsMissing(v) {
		return nil
	}
	return &v
}

// SeriesStatus reports what happened to one candidate series of a chart run.
type SeriesStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"` // Drawn, Skipped or Empty
	Points int    `json:"points"`
}

// ChartResult describes one image written by a chart run.
type ChartResult struct {
	Kind   ChartKind      `json:"kind"`
	Path   string         `json:"path"`
	Series []SeriesStatus `json:"series"`
}
