package solar

import "math"

// PanelClearanceFactor adds room around each panel for mounting and
// maintenance.
const PanelClearanceFactor = 1.2

// PanelSize is a module's footprint in millimetres.
type PanelSize struct {
	WidthMm  float64 `json:"widthMm" mapstructure:"widthMm" yaml:"widthMm"`
	HeightMm float64 `json:"heightMm" mapstructure:"heightMm" yaml:"heightMm"`
}

// DefaultPanel is a generic 1000 x 1700 mm module.
var DefaultPanel = PanelSize{WidthMm: 1000, HeightMm: 1700}

// AreaSqM returns the panel footprint in square metres.
func (p PanelSize) AreaSqM() float64 {
	return (p.WidthMm / 1000) * (p.HeightMm / 1000)
}

// EstimatePanelCount returns how many panels fit in the usable share of an
// area. The result is floored, so a partial panel never counts.
//
// A panel with a zero footprint divides by zero; the resulting conversion is
// platform dependent and callers should not rely on it.
func EstimatePanelCount(areaSqM float64, panel PanelSize) int {
	panelWithClearanceSqM := panel.AreaSqM() * PanelClearanceFactor
	usableAreaSqM := areaSqM * UsableAreaFraction

	return int(math.Floor(usableAreaSqM / panelWithClearanceSqM))
}
