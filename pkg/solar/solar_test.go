package solar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbzsolar/solar-roof-map/pkg/mathutil"
)

func TestClassifyRegion(t *testing.T) {
	tests := []struct {
		name       string
		pos        GeoPosition
		want       Region
		irradiance float64
	}{
		{"west of -50 below -10", GeoPosition{-10.5, -55}, RegionNorte, 5.2},
		{"east of -50 below -10", GeoPosition{-10.5, -45}, RegionNordeste, 5.9},
		// The second latitude band is unreachable, so these stay in the first.
		{"mid-west coordinates", GeoPosition{-15, -55}, RegionNorte, 5.2},
		{"south-east coordinates", GeoPosition{-15, -40}, RegionNordeste, 5.9},
		{"far south", GeoPosition{-25, -45}, RegionNordeste, 5.9},
		{"sao paulo", GeoPosition{-23.55, -46.63}, RegionNordeste, 5.9},
		// Everything at or north of -10 falls through to sul.
		{"north of -10", GeoPosition{-5, -40}, RegionSul, 5.0},
		{"exactly -10", GeoPosition{-10, -60}, RegionSul, 5.0},
		{"just north of -10", GeoPosition{-9.99, -60}, RegionSul, 5.0},
		{"longitude exactly -50", GeoPosition{-12, -50}, RegionNordeste, 5.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRegion(tt.pos)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, tt.irradiance, Irradiance(got), 1e-9)
		})
	}
}

func TestIrradianceTable(t *testing.T) {
	want := map[Region]float64{
		RegionNorte:       5.2,
		RegionNordeste:    5.9,
		RegionCentroOeste: 5.7,
		RegionSudeste:     5.4,
		RegionSul:         5.0,
	}
	for _, r := range Regions() {
		assert.InDelta(t, want[r], Irradiance(r), 1e-9, "region %s", r)
	}
	assert.Zero(t, Irradiance(Region("atlantis")))
}

func TestOrientationFactor(t *testing.T) {
	tests := []struct {
		orientation float64
		want        float64
	}{
		{0, 1.0},
		{45, 1.0},
		{45.1, EastWestFactor},
		{90, EastWestFactor},
		{-90, EastWestFactor},
		{134.9, EastWestFactor},
		{135, SouthFactor},
		{180, SouthFactor},
		// Bearings are not normalised, so west (270) and a full turn (360)
		// count as south-facing.
		{270, SouthFactor},
		{360, SouthFactor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OrientationFactor(tt.orientation), "orientation %v", tt.orientation)
	}
}

func TestTiltFactor(t *testing.T) {
	assert.Equal(t, 1.0, TiltFactor(-20, 35), "difference of exactly 15 is tolerated")
	assert.Equal(t, TiltPenaltyFactor, TiltFactor(-20, 35.5))
	assert.Equal(t, TiltPenaltyFactor, TiltFactor(-20, 4.9))
	assert.Equal(t, 1.0, TiltFactor(-23.55, 20))
	assert.Equal(t, 1.0, TiltFactor(20, 20), "ideal tilt uses absolute latitude")
}

func TestCalculateSolarPotential(t *testing.T) {
	tests := []struct {
		name       string
		pos        GeoPosition
		roof       Roof
		efficiency float64
		want       float64
	}{
		{
			name:       "sao paulo residence with defaults",
			pos:        GeoPosition{-23.55, -46.63},
			roof:       NewRoof(32),
			efficiency: DefaultEfficiency,
			// 5.9 * 22.4 * 0.17 * 0.7 * 1.0 * 0.85 = 13.367984
			want: 13.4,
		},
		{
			name:       "north facing ideal tilt",
			pos:        GeoPosition{-10.5, -55},
			roof:       Roof{AreaSqM: 100, TiltDegrees: 10, OrientationDegrees: 0},
			efficiency: DefaultEfficiency,
			// 5.2 * 70 * 0.17 * 0.85 = 52.598
			want: 52.6,
		},
		{
			name:       "east facing",
			pos:        GeoPosition{-10.5, -55},
			roof:       Roof{AreaSqM: 100, TiltDegrees: 10, OrientationDegrees: 90},
			efficiency: DefaultEfficiency,
			want:       44.7,
		},
		{
			name:       "steep roof",
			pos:        GeoPosition{-10.5, -55},
			roof:       Roof{AreaSqM: 100, TiltDegrees: 40, OrientationDegrees: 0},
			efficiency: DefaultEfficiency,
			want:       47.3,
		},
		{
			name:       "sul fallthrough",
			pos:        GeoPosition{-5, -40},
			roof:       Roof{AreaSqM: 50, TiltDegrees: 5, OrientationDegrees: 0},
			efficiency: DefaultEfficiency,
			// 5.0 * 35 * 0.17 * 0.85 = 25.2875
			want: 25.3,
		},
		{
			name:       "zero area",
			pos:        GeoPosition{-5, -40},
			roof:       Roof{AreaSqM: 0, TiltDegrees: 5},
			efficiency: DefaultEfficiency,
			want:       0,
		},
		{
			name:       "negative area propagates",
			pos:        GeoPosition{-5, -40},
			roof:       Roof{AreaSqM: -50, TiltDegrees: 5, OrientationDegrees: 0},
			efficiency: DefaultEfficiency,
			want:       -25.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSolarPotential(tt.pos, tt.roof, tt.efficiency)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculateSolarPotentialMonotonicInArea(t *testing.T) {
	pos := GeoPosition{-23.55, -46.63}
	previous := CalculateSolarPotential(pos, NewRoof(0), DefaultEfficiency)
	for area := 0.5; area <= 500; area += 0.5 {
		got := CalculateSolarPotential(pos, NewRoof(area), DefaultEfficiency)
		require.GreaterOrEqual(t, got, previous, "area %v", area)
		previous = got
	}
}

func TestCalculateSolarPotentialPrecision(t *testing.T) {
	positions := []GeoPosition{{-23.55, -46.63}, {-3.1, -60}, {-30, -51.2}, {-12.97, -38.5}}
	for _, pos := range positions {
		for area := 1.0; area < 300; area += 7.3 {
			for orientation := 0.0; orientation <= 360; orientation += 30 {
				roof := Roof{AreaSqM: area, TiltDegrees: 20, OrientationDegrees: orientation}
				got := CalculateSolarPotential(pos, roof, DefaultEfficiency)
				require.LessOrEqual(t, mathutil.DecimalPlaces(got), 1, "potential %v", got)
			}
		}
	}
}

func TestCalculateSolarPotentialIdempotent(t *testing.T) {
	pos := GeoPosition{-22.9, -43.2}
	roof := Roof{AreaSqM: 77.7, TiltDegrees: 12, OrientationDegrees: 60}
	first := CalculateSolarPotential(pos, roof, 0.2)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateSolarPotential(pos, roof, 0.2))
	}
}

func TestEstimatePanelCount(t *testing.T) {
	jinko := PanelSize{WidthMm: 1134, HeightMm: 1903}

	tests := []struct {
		name  string
		area  float64
		panel PanelSize
		want  int
	}{
		{"residence", 32, DefaultPanel, 10},
		{"small farm", 20, DefaultPanel, 6},
		{"shop", 48, DefaultPanel, 16},
		{"factory", 120, DefaultPanel, 41},
		{"condominium", 240, DefaultPanel, 82},
		{"smaller than one panel", 2, DefaultPanel, 0},
		{"zero area", 0, DefaultPanel, 0},
		{"negative area floors down", -10, DefaultPanel, -4},
		{"larger module", 32, jinko, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimatePanelCount(tt.area, tt.panel))
		})
	}
}

func TestEstimatePanelCountMonotonic(t *testing.T) {
	previous := EstimatePanelCount(0.1, DefaultPanel)
	for area := 0.1; area <= 1000; area += 0.37 {
		got := EstimatePanelCount(area, DefaultPanel)
		require.GreaterOrEqual(t, got, 0, "area %v", area)
		require.GreaterOrEqual(t, got, previous, "area %v", area)
		previous = got
	}
}

func TestPanelArea(t *testing.T) {
	assert.InDelta(t, 1.7, DefaultPanel.AreaSqM(), 1e-9)
}

func TestCalculateROI(t *testing.T) {
	tests := []struct {
		name    string
		daily   float64
		cost    float64
		rate    float64
		want    float64
		wantErr error
	}{
		// 15.7 * 365 = 5730.5; * 0.92 = 5272.06; 32500 / 5272.06 = 6.1645
		{name: "residence proposal", daily: 15.7, cost: 32500, rate: 0.92, want: 6.2},
		{name: "shop proposal", daily: 22.3, cost: 45800, rate: 0.92, want: 6.1},
		{name: "default tariff", daily: 10, cost: 31025, rate: DefaultElectricityRate, want: 10.0},
		{name: "negative cost propagates", daily: 10, cost: -3650, rate: 1, want: -1.0},
		{name: "zero cost", daily: 10, cost: 0, rate: 1, want: 0},
		{name: "zero production", daily: 0, cost: 32500, rate: 0.92, wantErr: ErrUndefinedPayback},
		{name: "zero tariff", daily: 15.7, cost: 32500, rate: 0, wantErr: ErrUndefinedPayback},
		{name: "division overflows", daily: 1e-300, cost: 1e300, rate: 1, wantErr: ErrUndefinedPayback},
		{name: "negative overflow", daily: 1e-300, cost: -1e300, rate: 1, wantErr: ErrUndefinedPayback},
		{name: "infinite cost", daily: 10, cost: math.Inf(1), rate: 1, wantErr: ErrUndefinedPayback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateROI(tt.daily, tt.cost, tt.rate)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, mathutil.DecimalPlaces(got), 1)
		})
	}
}

func TestCalculateROIIdempotent(t *testing.T) {
	first, err := CalculateROI(45.2, 96400, 0.92)
	require.NoError(t, err)
	second, err := CalculateROI(45.2, 96400, 0.92)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEstimateInstallation(t *testing.T) {
	est, err := EstimateInstallation(Request{
		Position:         GeoPosition{-23.55, -46.63},
		Roof:             NewRoof(32),
		Efficiency:       DefaultEfficiency,
		Panel:            DefaultPanel,
		InstallationCost: 32500,
		ElectricityRate:  0.92,
	})
	require.NoError(t, err)

	assert.Equal(t, RegionNordeste, est.Region)
	assert.InDelta(t, 5.9, est.BaseIrradiance, 1e-9)
	assert.InDelta(t, 13.4, est.DailyPotentialKWh, 1e-9)
	assert.Equal(t, 10, est.PanelCount)
	require.NotNil(t, est.PaybackYears)
	// 13.4 * 365 * 0.92 = 4499.72; 32500 / 4499.72 = 7.2227
	assert.InDelta(t, 7.2, *est.PaybackYears, 1e-9)
}

func TestEstimateInstallationUndefinedPayback(t *testing.T) {
	est, err := EstimateInstallation(Request{
		Position:         GeoPosition{-23.55, -46.63},
		Roof:             NewRoof(0),
		Efficiency:       DefaultEfficiency,
		Panel:            DefaultPanel,
		InstallationCost: 10000,
		ElectricityRate:  0.92,
	})
	require.NoError(t, err)
	assert.Nil(t, est.PaybackYears)
	assert.Zero(t, est.DailyPotentialKWh)
}
