package services

import (
	"math"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
	"github.com/custodia-labs/estatemap/internal/geo"
)

// Ensure ViewportPolicy implements the interface.
var _ driving.ViewportFitter = ViewportPolicy{}

// Zoom limits of the slippy-map tile pyramid.
const (
	MinZoom = 1
	MaxZoom = 18
)

// ViewportPolicy derives the map region from a result set.
type ViewportPolicy struct {
	// DefaultCenter is shown when there are no results.
	DefaultCenter domain.LatLng

	// DefaultZoom is the zoom level of the default viewport.
	DefaultZoom int

	// Padding is the margin in degrees added on every side of fitted results.
	Padding float64
}

// DefaultViewportPolicy centres on Bangalore at zoom 12.
func DefaultViewportPolicy() ViewportPolicy {
	return NewViewportPolicy(domain.DefaultAppSettings().Map)
}

// NewViewportPolicy builds a policy from map settings.
func NewViewportPolicy(m domain.MapSettings) ViewportPolicy {
	return ViewportPolicy{
		DefaultCenter: domain.LatLng{Lat: m.CenterLat, Lon: m.CenterLon},
		DefaultZoom:   m.Zoom,
		Padding:       m.Padding,
	}
}

// Compute returns the viewport for results. It is a pure function of the
// coordinates in results: input order does not matter.
func (p ViewportPolicy) Compute(results domain.ResultSet) domain.Viewport {
	if len(results) == 0 {
		return p.defaultViewport()
	}

	b := domain.Bounds{
		MinLat: math.Inf(1),
		MaxLat: math.Inf(-1),
		MinLon: math.Inf(1),
		MaxLon: math.Inf(-1),
	}
	for _, r := range results {
		b.MinLat = math.Min(b.MinLat, r.Latitude)
		b.MaxLat = math.Max(b.MaxLat, r.Latitude)
		b.MinLon = math.Min(b.MinLon, r.Longitude)
		b.MaxLon = math.Max(b.MaxLon, r.Longitude)
	}

	b.MinLat = geo.Clamp(b.MinLat-p.Padding, -90, 90)
	b.MaxLat = geo.Clamp(b.MaxLat+p.Padding, -90, 90)
	b.MinLon = geo.Clamp(b.MinLon-p.Padding, -180, 180)
	b.MaxLon = geo.Clamp(b.MaxLon+p.Padding, -180, 180)

	return domain.Viewport{
		Bounds:  b,
		Center:  b.Center(),
		Zoom:    FitZoom(b),
		Padding: p.Padding,
	}
}

func (p ViewportPolicy) defaultViewport() domain.Viewport {
	c := p.DefaultCenter
	return domain.Viewport{
		Bounds: domain.Bounds{
			MinLat: c.Lat,
			MaxLat: c.Lat,
			MinLon: c.Lon,
			MaxLon: c.Lon,
		},
		Center:  c,
		Zoom:    p.DefaultZoom,
		Padding: p.Padding,
		Default: true,
	}
}

// FitZoom returns the highest zoom level at which b fits in a single tile.
// Latitude span is measured in web mercator so boxes far from the equator
// are not over-zoomed.
func FitZoom(b domain.Bounds) int {
	lonSpan := b.LonSpan()
	ySpan := math.Abs(geo.MercatorY(b.MaxLat) - geo.MercatorY(b.MinLat))

	zoom := float64(MaxZoom)
	if lonSpan > 0 {
		zoom = math.Min(zoom, math.Log2(360/lonSpan))
	}
	if ySpan > 0 {
		zoom = math.Min(zoom, math.Log2(2*math.Pi/ySpan))
	}

	return int(geo.Clamp(math.Floor(zoom), MinZoom, MaxZoom))
}
