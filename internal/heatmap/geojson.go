package heatmap

// FeatureCollection is the GeoJSON source fed to the map's heatmap layer.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON point feature carrying its intensity.
type Feature struct {
	Type       string            `json:"type"`
	Properties FeatureProperties `json:"properties"`
	Geometry   Geometry          `json:"geometry"`
}

type FeatureProperties struct {
	Intensity float64 `json:"intensity"`
}

// Geometry is a GeoJSON Point; Coordinates are [lng, lat].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// GeoJSON converts d into a FeatureCollection.
func (d Data) GeoJSON() FeatureCollection {
	features := make([]Feature, 0, len(d.Points))
	for _, p := range d.Points {
		features = append(features, Feature{
			Type:       "Feature",
			Properties: FeatureProperties{Intensity: p.Intensity},
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{p.Lng, p.Lat},
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
