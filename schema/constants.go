package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the normalized table dump.
	OutputMode string

	// ImageFormat represents the chart image encoding.
	ImageFormat string

	// RendererKind selects the chart rendering backend.
	RendererKind string

	// DateHint names the timestamp format tried first when parsing keys.
	DateHint string

	// ChartKind identifies the chart entry point.
	ChartKind string

	// DatabaseBackend represents the database backend for render history.
	DatabaseBackend string
)

// Metric names found in test-suite and size inputs.
const (
	TotalMetric     = "total"
	PassMetric      = "pass"
	FailMetric      = "fail"
	ErrorMetric     = "error"
	SkipMetric      = "skip"
	SizeMetric      = "size"
	MultisizeMetric = "multisize"
)

// SizesGroup is the nested per-binary size mapping.
const SizesGroup = "sizes"

// ResultMetrics lists test-suite metrics in plotting order.
var ResultMetrics = []string{TotalMetric, FailMetric, PassMetric, ErrorMetric, SkipMetric}

// SizeMetrics lists binary-size metrics in plotting order.
var SizeMetrics = []string{SizeMetric, MultisizeMetric}

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All image formats supported.
const (
	PNGFormat ImageFormat = "png" // default
	SVGFormat ImageFormat = "svg"
)

// All renderers supported.
const (
	GonumRenderer   RendererKind = "gonum" // default
	GoChartRenderer RendererKind = "gochart"
)

// Timestamp format hints.
const (
	AutoDates    DateHint = "auto" // default
	RFC2822Dates DateHint = "rfc2822"
	ISO8601Dates DateHint = "iso8601"
)

// All chart kinds.
const (
	ResultsChart        ChartKind = "results"
	SizeChart           ChartKind = "size"
	IndividualSizeChart ChartKind = "individual-size"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// IndividualSizeDir is the subdirectory for per-binary charts.
const IndividualSizeDir = "individual-size-results"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidImageFormats lists all valid image formats.
var ValidImageFormats = map[ImageFormat]struct{}{
	PNGFormat: {},
	SVGFormat: {},
}

// ValidRenderers lists all valid renderers.
var ValidRenderers = map[RendererKind]struct{}{
	GonumRenderer:   {},
	GoChartRenderer: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
