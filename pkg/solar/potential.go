package solar

import (
	"math"

	"github.com/bbzsolar/solar-roof-map/pkg/mathutil"
)

// Defaults applied by NewRoof and by callers that omit a parameter.
const (
	DefaultTiltDegrees        = 20.0
	DefaultOrientationDegrees = 180.0
	DefaultEfficiency         = 0.17
)

// Correction factors for the yield estimate.
const (
	// UsableAreaFraction is the share of a roof available for panels once
	// edges, obstructions and access paths are excluded.
	UsableAreaFraction = 0.7

	// EnvironmentalFactor covers shading, soiling and similar losses.
	EnvironmentalFactor = 0.85

	// EastWestFactor applies when the roof faces more than 45° and less than
	// 135° away from north.
	EastWestFactor = 0.85

	// SouthFactor applies when the roof faces 135° or more away from north.
	SouthFactor = 0.7

	// TiltPenaltyFactor applies when the roof tilt is more than
	// TiltToleranceDegrees away from the ideal tilt.
	TiltPenaltyFactor    = 0.9
	TiltToleranceDegrees = 15.0

	northBearing = 0.0
)

// Roof describes the surface panels would be mounted on. Orientation is a
// compass bearing where 0 is north.
type Roof struct {
	AreaSqM            float64 `json:"areaSqM"`
	TiltDegrees        float64 `json:"tiltDegrees"`
	OrientationDegrees float64 `json:"orientationDegrees"`
}

// NewRoof returns a roof of the given area with the default tilt and
// orientation.
func NewRoof(areaSqM float64) Roof {
	return Roof{
		AreaSqM:            areaSqM,
		TiltDegrees:        DefaultTiltDegrees,
		OrientationDegrees: DefaultOrientationDegrees,
	}
}

// OrientationFactor returns the yield multiplier for a roof bearing. In the
// southern hemisphere a north-facing roof is optimal.
func OrientationFactor(orientationDegrees float64) float64 {
	difference := math.Abs(northBearing - orientationDegrees)

	if difference > 45 && difference < 135 {
		return EastWestFactor
	} else if difference >= 135 {
		return SouthFactor
	}
	return 1.0
}

// TiltFactor returns the yield multiplier for a roof tilt at the given
// latitude. The ideal tilt is the absolute latitude.
func TiltFactor(latitude, tiltDegrees float64) float64 {
	idealTilt := math.Abs(latitude)
	if math.Abs(idealTilt-tiltDegrees) > TiltToleranceDegrees {
		return TiltPenaltyFactor
	}
	return 1.0
}

// CalculateSolarPotential estimates the daily energy yield in kWh for a roof
// at the given position, rounded to one decimal place.
func CalculateSolarPotential(pos GeoPosition, roof Roof, efficiencyFactor float64) float64 {
	baseIrradiance := Irradiance(ClassifyRegion(pos))
	orientationFactor := OrientationFactor(roof.OrientationDegrees)
	tiltFactor := TiltFactor(pos.Latitude, roof.TiltDegrees)
	usableRoofArea := roof.AreaSqM * UsableAreaFraction

	dailyPotential := baseIrradiance * usableRoofArea * efficiencyFactor *
		orientationFactor * tiltFactor * EnvironmentalFactor

	return mathutil.RoundTenth(dailyPotential)
}
