// Package geo handles geographic data structures and coordinate conversions.
package geo

import "github.com/custodia-labs/estatemap/internal/core/domain"

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	BBox     []float64        `json:"bbox,omitempty" yaml:"bbox,omitempty"` // [minLon, minLat, maxLon, maxLat]
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single project marker with its properties.
type GeoJSONFeature struct {
	Type       string          `json:"type" yaml:"type"`
	ID         int64           `json:"id" yaml:"id"`
	Geometry   GeoJSONGeometry `json:"geometry" yaml:"geometry"`
	Properties map[string]any  `json:"properties" yaml:"properties"`
}

// GeoJSONGeometry represents a point geometry.
type GeoJSONGeometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat]
}

// FeatureCollection converts a result set into point features in result
// order. When selectedID is non-nil the matching feature carries
// "selected": true. The bbox is taken from the viewport unless it is the
// default one.
func FeatureCollection(results domain.ResultSet, vp domain.Viewport, selectedID *int64) GeoJSONFeatureCollection {
	fc := GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]GeoJSONFeature, 0, len(results)),
	}

	if !vp.Default && len(results) > 0 {
		b := vp.Bounds
		fc.BBox = []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
	}

	for _, r := range results {
		fc.Features = append(fc.Features, GeoJSONFeature{
			Type: "Feature",
			ID:   r.ID,
			Geometry: GeoJSONGeometry{
				Type:        "Point",
				Coordinates: []float64{r.Longitude, r.Latitude},
			},
			Properties: map[string]any{
				"id":       r.ID,
				"name":     r.Name,
				"selected": selectedID != nil && *selectedID == r.ID,
			},
		})
	}

	return fc
}
