package solar

import "errors"

// Request bundles the inputs for a full installation estimate.
type Request struct {
	Position         GeoPosition
	Roof             Roof
	Efficiency       float64
	Panel            PanelSize
	InstallationCost float64
	ElectricityRate  float64
}

// Estimate is the combined result of the three calculations. PaybackYears is
// nil when the payback period is undefined.
type Estimate struct {
	Region            Region   `json:"region"`
	BaseIrradiance    float64  `json:"baseIrradiance"`
	DailyPotentialKWh float64  `json:"dailyPotentialKWh"`
	PanelCount        int      `json:"panelCount"`
	AnnualSavings     float64  `json:"annualSavings"`
	PaybackYears      *float64 `json:"paybackYears,omitempty"`
}

// EstimateInstallation runs potential, panel count and payback for a request.
// Panel count uses the roof area directly; payback uses the rounded daily
// potential.
func EstimateInstallation(req Request) (Estimate, error) {
	region := ClassifyRegion(req.Position)
	potential := CalculateSolarPotential(req.Position, req.Roof, req.Efficiency)

	result := Estimate{
		Region:            region,
		BaseIrradiance:    Irradiance(region),
		DailyPotentialKWh: potential,
		PanelCount:        EstimatePanelCount(req.Roof.AreaSqM, req.Panel),
		AnnualSavings:     AnnualSavings(potential, req.ElectricityRate),
	}

	payback, err := CalculateROI(potential, req.InstallationCost, req.ElectricityRate)
	if err != nil {
		if errors.Is(err, ErrUndefinedPayback) {
			return result, nil
		}
		return result, err
	}
	result.PaybackYears = &payback

	return result, nil
}
