// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/bbzsolar/solar-roof-map/pkg/constants"
)

// RoundTenth rounds a value to one decimal place, half away from zero. Estimates
// and payback periods are reported at this precision.
func RoundTenth(val float64) float64 {
	return math.Round(val*constants.EstimatePrecision) / constants.EstimatePrecision
}

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.CurrencyPrecision) / constants.CurrencyPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// DecimalPlaces reports how many digits follow the decimal point in the
// shortest representation of val. Non-finite values report 0.
func DecimalPlaces(val float64) int {
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return 0
	}
	for places := 0; places < 17; places++ {
		scale := math.Pow(10, float64(places))
		if math.Round(val*scale)/scale == val {
			return places
		}
	}
	return 17
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
