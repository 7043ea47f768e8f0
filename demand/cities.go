package demand

import (
	"sort"
)

// Country is written for every city of the zoning.
const Country = "France"

// City is one row of the cities table.
type City struct {
	ID         int
	Code       string
	Name       string
	Lat        float64
	Lng        float64
	Country    string
	Population float64
}

// NewCities numbers the zones densely in input order.
func NewCities(zones []Zone) []City {
	cities := make([]City, len(zones))
	for i, z := range zones {
		cities[i] = City{
			ID:      i,
			Code:    z.Code,
			Name:    z.Name,
			Lat:     z.Lat,
			Lng:     z.Lng,
			Country: Country,
		}
	}
	return cities
}

// WithPopulation returns a copy of cities whose population is the sum of
// the residence sizes of each city.
func WithPopulation(cities []City, residence []Residence) []City {
	sizes := make(map[int]float64, len(cities))
	for _, r := range residence {
		sizes[r.CityID] += r.Size
	}
	out := make([]City, len(cities))
	for i, c := range cities {
		c.Population = sizes[c.ID]
		out[i] = c
	}
	return out
}

// cityOrder returns the indexes of cities sorted by code, then id.
func cityOrder(cities []City) []int {
	order := make([]int, len(cities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cities[order[a]].Code < cities[order[b]].Code
	})
	return order
}
