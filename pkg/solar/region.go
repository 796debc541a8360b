// Package solar estimates rooftop photovoltaic yield, panel count and payback
// period for installations in Brazil.
//
// Every function in this package is pure: no state is shared between calls
// and inputs are not validated, so out-of-range values propagate through the
// arithmetic rather than producing errors. The only exception is the payback
// singularity reported by CalculateROI.
package solar

// Region is one of the five Brazilian macro-regions used to pick a baseline
// irradiance.
type Region string

const (
	RegionNorte       Region = "norte"
	RegionNordeste    Region = "nordeste"
	RegionCentroOeste Region = "centro-oeste"
	RegionSudeste     Region = "sudeste"
	RegionSul         Region = "sul"
)

// regionIrradiance holds average daily irradiance in kWh/m²/day.
var regionIrradiance = map[Region]float64{
	RegionNorte:       5.2,
	RegionNordeste:    5.9,
	RegionCentroOeste: 5.7,
	RegionSudeste:     5.4,
	RegionSul:         5.0,
}

// Regions returns the macro-regions in a stable order.
func Regions() []Region {
	return []Region{RegionNorte, RegionNordeste, RegionCentroOeste, RegionSudeste, RegionSul}
}

// Irradiance returns the baseline irradiance for a region in kWh/m²/day, or 0
// for an unknown region.
func Irradiance(r Region) float64 {
	return regionIrradiance[r]
}

// GeoPosition is a signed decimal-degree coordinate.
type GeoPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ClassifyRegion maps a coordinate to a macro-region.
//
// The thresholds are evaluated in a fixed order and the second latitude test
// can never match, since anything below -20 was already taken by the first.
// Everything at or north of -10 falls through to sul. This ordering is kept
// as-is; see DESIGN.md for the open question.
func ClassifyRegion(pos GeoPosition) Region {
	region := RegionSudeste

	if pos.Latitude < -10 {
		if pos.Longitude < -50 {
			region = RegionNorte
		} else {
			region = RegionNordeste
		}
	} else if pos.Latitude < -20 {
		if pos.Longitude < -52 {
			region = RegionCentroOeste
		} else {
			region = RegionSudeste
		}
	} else {
		region = RegionSul
	}

	return region
}
