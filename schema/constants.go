package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of tabular output.
	OutputMode string

	// ChartKind represents one of the supported chart renderers.
	ChartKind string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All chart kinds supported.
const (
	ScatterChart   ChartKind = "scatter"
	ErrorBarsChart ChartKind = "errorbars"
	OutbreakChart  ChartKind = "outbreak"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidChartKinds lists all valid chart kinds.
var ValidChartKinds = map[ChartKind]struct{}{
	ScatterChart:   {},
	ErrorBarsChart: {},
	OutbreakChart:  {},
}

// AllChartKinds returns the closed set of chart renderers, in render order.
var AllChartKinds = []ChartKind{ScatterChart, ErrorBarsChart, OutbreakChart}
