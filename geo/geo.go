// Package geo provides great-circle distance math for radius filtering and
// distance-based ordering of diners.
package geo

import "math"

const earthRadiusKM = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// Circle describes a radius filter around a center point.
type Circle struct {
	Center   Point
	RadiusKM float64
}

// Contains reports whether p lies within the circle (inclusive boundary).
func (c Circle) Contains(p Point) bool {
	return DistanceKM(c.Center, p) <= c.RadiusKM
}

// DistanceKM calculates the great-circle distance between two points
// using the haversine formula. Returns distance in kilometers.
func DistanceKM(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lon1 := a.Lon * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	lon2 := b.Lon * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
