// Package heatmap generates the synthetic solar-intensity points drawn on the
// dashboard map and the map configuration handed to the browser.
package heatmap

import (
	"math"
	"math/rand/v2"

	"github.com/bbzsolar/solar-roof-map/pkg/constants"
	"github.com/bbzsolar/solar-roof-map/pkg/mathutil"
	"github.com/bbzsolar/solar-roof-map/pkg/solar"
	"github.com/bbzsolar/solar-roof-map/pkg/validation"
)

// IntensityBoost multiplies the intensity of points north-west of the centre.
const IntensityBoost = 1.5

// DefaultRegionName labels the default data set.
const DefaultRegionName = "São Paulo"

// Point is one weighted heatmap sample. Intensity lies in [0, 1].
type Point struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
	Location  string  `json:"location,omitempty"`
}

// Data is a generated point set with its summary.
type Data struct {
	Points           []Point `json:"points"`
	RegionName       string  `json:"regionName"`
	AverageIntensity float64 `json:"averageIntensity"`
}

// Options controls Generate. Zero values fall back to the São Paulo defaults.
type Options struct {
	Center     solar.GeoPosition
	Count      int
	Seed       uint64
	RegionName string
}

// DefaultOptions returns the options the dashboard uses.
func DefaultOptions() Options {
	return Options{
		Center:     solar.GeoPosition{Latitude: constants.DefaultMapLatitude, Longitude: constants.DefaultMapLongitude},
		Count:      constants.DefaultHeatmapSize,
		RegionName: DefaultRegionName,
	}
}

// Generate scatters opts.Count points uniformly over a disc of
// HeatmapRadiusDegrees around the centre. The same seed always yields the
// same points.
func Generate(opts Options) Data {
	if opts.Count <= 0 {
		opts.Count = constants.DefaultHeatmapSize
	}
	if opts.Center == (solar.GeoPosition{}) {
		opts.Center = DefaultOptions().Center
	}
	if opts.RegionName == "" {
		opts.RegionName = DefaultRegionName
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	points := make([]Point, 0, opts.Count)
	var total float64

	for i := 0; i < opts.Count; i++ {
		angle := rng.Float64() * math.Pi * 2
		radius := math.Sqrt(rng.Float64()) * constants.HeatmapRadiusDegrees
		lat := opts.Center.Latitude + radius*math.Cos(angle)
		lng := opts.Center.Longitude + radius*math.Sin(angle)

		intensity := rng.Float64()
		if lat > opts.Center.Latitude && lng < opts.Center.Longitude {
			intensity *= IntensityBoost
		}
		intensity = math.Min(intensity, 1)

		total += intensity
		points = append(points, Point{Lat: lat, Lng: lng, Intensity: intensity})
	}

	return Data{
		Points:           points,
		RegionName:       opts.RegionName,
		AverageIntensity: mathutil.Round(total / float64(len(points))),
	}
}

// MapConfig is what the browser needs to draw the map. Center is
// [longitude, latitude].
type MapConfig struct {
	Center [2]float64 `json:"center"`
	Zoom   float64    `json:"zoom"`
	Style  string     `json:"style"`
	Token  string     `json:"token,omitempty"`
}

// NewMapConfig returns the default map view with token attached. Only public
// tokens are accepted; an empty token yields a config the page renders as
// "token required".
func NewMapConfig(token string) (MapConfig, error) {
	cfg := MapConfig{
		Center: [2]float64{constants.DefaultMapLongitude, constants.DefaultMapLatitude},
		Zoom:   constants.DefaultMapZoom,
		Style:  constants.DefaultMapStyle,
	}
	if token == "" {
		return cfg, nil
	}
	if err := validation.ValidateMapboxToken(token); err != nil {
		return MapConfig{}, err
	}
	cfg.Token = token
	return cfg, nil
}
