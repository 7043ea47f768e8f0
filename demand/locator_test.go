package demand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCities() []City {
	return NewCities([]Zone{
		{Code: "75", Name: "Paris", Lat: 48.8566, Lng: 2.3522},
		{Code: "69", Name: "Lyon", Lat: 45.764, Lng: 4.8357},
		{Code: "13", Name: "Marseille", Lat: 43.2965, Lng: 5.3698},
	})
}

func TestCentroidLocator(t *testing.T) {
	l := NewCentroidLocator(testCities(), 0)

	tests := []struct {
		name     string
		lat, lng float64
		want     int
		ok       bool
	}{
		{"paris", 48.86, 2.35, 0, true},
		{"versailles", 48.80, 2.13, 0, true},
		{"grenoble", 45.19, 5.72, 1, true},
		{"toulon", 43.12, 5.93, 2, true},
		{"missing", math.NaN(), 2.35, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CityOf(tt.lat, tt.lng)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCentroidLocator_MaxDistance(t *testing.T) {
	l := NewCentroidLocator(testCities(), 100)

	_, ok := l.CityOf(48.80, 2.13)
	assert.True(t, ok)

	// Brest is far from every centroid.
	_, ok = l.CityOf(48.39, -4.49)
	assert.False(t, ok)
}

func TestCentroidLocator_SkipsCitiesWithoutCentroid(t *testing.T) {
	cities := testCities()
	cities[0].Lat = math.NaN()
	l := NewCentroidLocator(cities, 0)

	got, ok := l.CityOf(48.86, 2.35)
	assert.True(t, ok)
	assert.NotEqual(t, 0, got)

	_, ok = NewCentroidLocator(nil, 0).CityOf(48.86, 2.35)
	assert.False(t, ok)
}
