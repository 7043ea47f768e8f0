package demand

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/theoremus-urban-solutions/entd-longdistance/utils"
)

// CityLocator assigns a WGS84 point to a city id.
type CityLocator interface {
	CityOf(lat, lng float64) (cityID int, ok bool)
}

// CentroidLocator assigns points to the city with the nearest centroid on
// the sphere. Ties go to the city listed first.
type CentroidLocator struct {
	ids       []int
	centroids []s2.Point
	maxAngle  s1.Angle
}

// NewCentroidLocator indexes the city centroids. Cities without a valid
// centroid are skipped. A positive maxDistanceKm rejects points farther
// than that from every centroid.
func NewCentroidLocator(cities []City, maxDistanceKm float64) *CentroidLocator {
	l := &CentroidLocator{}
	for _, c := range cities {
		if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
			continue
		}
		l.ids = append(l.ids, c.ID)
		l.centroids = append(l.centroids, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lng)))
	}
	if maxDistanceKm > 0 {
		l.maxAngle = s1.Angle(maxDistanceKm * utils.MetersPerKilometer / utils.EarthRadiusMeters)
	}
	return l
}

// CityOf implements CityLocator.
func (l *CentroidLocator) CityOf(lat, lng float64) (int, bool) {
	if math.IsNaN(lat) || math.IsNaN(lng) || len(l.centroids) == 0 {
		return 0, false
	}
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	best := 0
	bestAngle := p.Distance(l.centroids[0])
	for i := 1; i < len(l.centroids); i++ {
		if d := p.Distance(l.centroids[i]); d < bestAngle {
			best, bestAngle = i, d
		}
	}
	if l.maxAngle > 0 && bestAngle > l.maxAngle {
		return 0, false
	}
	return l.ids[best], true
}
