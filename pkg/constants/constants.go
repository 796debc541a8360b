// Package constants provides shared constants for the solar-roof-map application.
package constants

// DisplayDateLayout is the day/month/year layout used by the dashboard for
// project and proposal dates.
const DisplayDateLayout = "02/01/2006"

// Rounding constants
const (
	// EstimatePrecision is the scale used to round estimates to one decimal place
	EstimatePrecision = 10

	// CurrencyPrecision is the scale used to round currency to two decimal places
	CurrencyPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the dashboard
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Heatmap defaults, centred on São Paulo.
const (
	DefaultMapLatitude  = -23.55
	DefaultMapLongitude = -46.63
	DefaultMapZoom      = 10
	DefaultMapStyle     = "mapbox://styles/mapbox/light-v11"
	DefaultHeatmapSize  = 1000

	// HeatmapRadiusDegrees is the sampling radius around the centre (~15 km)
	HeatmapRadiusDegrees = 0.15
)
