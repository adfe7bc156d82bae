package domain

import "fmt"

// LatLng is a WGS84 coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String formats the coordinate for display.
func (l LatLng) String() string {
	return fmt.Sprintf("%.4f, %.4f", l.Lat, l.Lon)
}

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether the coordinate lies inside the box, edges included.
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// Center returns the midpoint of the box.
func (b Bounds) Center() LatLng {
	return LatLng{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// LatSpan returns the height of the box in degrees.
func (b Bounds) LatSpan() float64 {
	return b.MaxLat - b.MinLat
}

// LonSpan returns the width of the box in degrees.
func (b Bounds) LonSpan() float64 {
	return b.MaxLon - b.MinLon
}

// Viewport is the geographic region the map should frame.
// It is derived from a ResultSet and never assigned independently.
type Viewport struct {
	// Bounds is the padded region to fit. Degenerate for the default viewport.
	Bounds Bounds `json:"bounds"`

	// Center is the point the map centres on.
	Center LatLng `json:"center"`

	// Zoom is the tile zoom level the region fits at.
	Zoom int `json:"zoom"`

	// Padding is the margin, in degrees, added around the covered coordinates.
	Padding float64 `json:"padding"`

	// Default is true when the viewport is the fixed city-centre view
	// used for an empty result set.
	Default bool `json:"default"`
}
