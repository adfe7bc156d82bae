package geo

import "math"

// MaxMercatorLat is the latitude at which web mercator is clipped.
const MaxMercatorLat = 85.05112878

// MercatorY projects a latitude onto the web mercator y axis, in radians.
// Latitudes beyond MaxMercatorLat are clipped.
func MercatorY(lat float64) float64 {
	lat = Clamp(lat, -MaxMercatorLat, MaxMercatorLat)
	rad := lat * math.Pi / 180
	return math.Log(math.Tan(math.Pi/4 + rad/2))
}

// ToUnit projects a coordinate onto the unit square of the web mercator
// world: x grows east from 0 at -180°, y grows south from 0 at the top.
func ToUnit(lat, lon float64) (x, y float64) {
	x = (Clamp(lon, -180, 180) + 180) / 360
	y = 0.5 - MercatorY(lat)/(2*math.Pi)
	return x, y
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
