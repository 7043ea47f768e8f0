package demand

import (
	"sort"
)

// DestinationProbability is the probability of choosing the destination
// city to perform an activity when starting from the origin city.
type DestinationProbability struct {
	FromID      int
	ToID        int
	ActivityID  int
	Probability float64
}

// ODProbability sums the activity probabilities of an origin-destination
// pair.
type ODProbability struct {
	FromID      int
	ToID        int
	Probability float64
}

// ODStats counts the trips left out of the probabilities.
type ODStats struct {
	OutOfScope int
	Unlocated  int
}

// BuildODProbabilities estimates destination choice probabilities from
// located trips whose preceding and following purposes are both modelled
// activities. The activity is the following purpose. For each origin and
// activity the probabilities over destinations sum to 1. The result covers
// every (from, to, activity) of the cities with 0 for unobserved
// combinations, sorted by from, activity, to. The aggregate sums the
// activities per (from, to), sorted by from, to.
func BuildODProbabilities(trips []LocatedTrip, cities []City, locator CityLocator) ([]DestinationProbability, []ODProbability, ODStats) {
	var stats ODStats
	type odKey struct{ from, to, activity int }
	type zoneKey struct{ from, activity int }
	counts := make(map[odKey]int)
	totals := make(map[zoneKey]int)
	for _, t := range trips {
		_, okPrev := activityID(t.PrecedingPurpose)
		activity, okNext := activityID(t.FollowingPurpose)
		if !okPrev || !okNext {
			stats.OutOfScope++
			continue
		}
		from, okFrom := locator.CityOf(t.OriginLat, t.OriginLng)
		to, okTo := locator.CityOf(t.DestinationLat, t.DestinationLng)
		if !okFrom || !okTo {
			stats.Unlocated++
			continue
		}
		counts[odKey{from, to, activity}]++
		totals[zoneKey{from, activity}]++
	}

	ids := make([]int, len(cities))
	for i, c := range cities {
		ids[i] = c.ID
	}
	sort.Ints(ids)

	byActivity := make([]DestinationProbability, 0, len(ids)*len(ids)*len(ActivityTypes))
	aggregate := make([]ODProbability, 0, len(ids)*len(ids))
	sums := make(map[[2]int]float64, len(ids)*len(ids))
	for _, from := range ids {
		for _, a := range ActivityTypes {
			total := totals[zoneKey{from, a.ID}]
			for _, to := range ids {
				p := 0.0
				if total > 0 {
					p = float64(counts[odKey{from, to, a.ID}]) / float64(total)
				}
				byActivity = append(byActivity, DestinationProbability{FromID: from, ToID: to, ActivityID: a.ID, Probability: p})
				sums[[2]int{from, to}] += p
			}
		}
	}
	for _, from := range ids {
		for _, to := range ids {
			aggregate = append(aggregate, ODProbability{FromID: from, ToID: to, Probability: sums[[2]int{from, to}]})
		}
	}
	return byActivity, aggregate, stats
}
