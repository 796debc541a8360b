package solar

import (
	"math"

	"github.com/bbzsolar/solar-roof-map/pkg/mathutil"
)

const (
	// DefaultElectricityRate is the fallback tariff in R$/kWh.
	DefaultElectricityRate = 0.85

	// DaysPerYear is used to annualise daily production.
	DaysPerYear = 365
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrUndefinedPayback is returned by CalculateROI when the installation
// produces no annual savings, either because production or the tariff is zero,
// or when the payback period is not a finite number.
var ErrUndefinedPayback = constError("payback period undefined: annual savings are zero")

// AnnualSavings returns the yearly saving in currency units for a daily
// production at the given tariff.
func AnnualSavings(dailyProductionKWh, electricityRatePerKWh float64) float64 {
	annualProductionKWh := dailyProductionKWh * DaysPerYear
	return annualProductionKWh * electricityRatePerKWh
}

// CalculateROI returns the number of years until savings cover the
// installation cost, rounded to one decimal place.
//
// Negative inputs are not rejected and may produce a negative payback. Zero
// annual savings, or savings so small the division overflows, return
// ErrUndefinedPayback instead of an infinite value.
func CalculateROI(dailyProductionKWh, installationCost, electricityRatePerKWh float64) (float64, error) {
	annualSavings := AnnualSavings(dailyProductionKWh, electricityRatePerKWh)
	if annualSavings == 0 {
		return 0, ErrUndefinedPayback
	}

	paybackYears := installationCost / annualSavings
	if math.IsInf(paybackYears, 0) || math.IsNaN(paybackYears) {
		return 0, ErrUndefinedPayback
	}
	return mathutil.RoundTenth(paybackYears), nil
}
