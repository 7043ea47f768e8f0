package utils

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	MetersPerKilometer = 1000.0
	EarthRadiusMeters  = 6371000.0
)

// KilometersToMeters converts a survey distance; NaN becomes 0.
func KilometersToMeters(km float64) float64 {
	if math.IsNaN(km) {
		return 0
	}
	return km * MetersPerKilometer
}

// CrowflyDistance returns the great-circle distance in meters between two
// WGS84 points.
func CrowflyDistance(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}
