// Package demand turns the synthetic population and the cleaned survey into
// the input tables of the long-distance demand model: agent classes,
// residence counts per city, activity durations and destination
// probabilities.
//
// Every builder is a pure function over in-memory rows. Spatial lookups go
// through a CityLocator so that any zoning can be plugged in; the provided
// CentroidLocator assigns a point to the nearest city centroid.
package demand
