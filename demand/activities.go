package demand

import (
	"math"
	"sort"

	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// ActivityType is one row of the act table.
type ActivityType struct {
	ID      int
	Purpose survey.Purpose
}

// ActivityTypes are the activities the demand model schedules, with their
// ids.
var ActivityTypes = []ActivityType{
	{ID: 0, Purpose: survey.PurposeHome},
	{ID: 1, Purpose: survey.PurposeVisits},
	{ID: 2, Purpose: survey.PurposeHoliday},
}

const (
	ActivityCost       = 1
	PercOfTimeTarget   = 0.1
	DurationDiscomfort = 1
)

// activityID returns the id of a modelled purpose.
func activityID(p survey.Purpose) (int, bool) {
	for _, a := range ActivityTypes {
		if a.Purpose == p {
			return a.ID, true
		}
	}
	return 0, false
}

// ActCity offers an activity in a city.
type ActCity struct {
	CityID     int
	ActivityID int
	Cost       int
}

// BuildActCity offers every activity type in every city.
func BuildActCity(cities []City) []ActCity {
	out := make([]ActCity, 0, len(cities)*len(ActivityTypes))
	for _, c := range cities {
		for _, a := range ActivityTypes {
			out = append(out, ActCity{CityID: c.ID, ActivityID: a.ID, Cost: ActivityCost})
		}
	}
	return out
}

// PopActivity is the mean duration of an activity for an agent class.
type PopActivity struct {
	AgentID            int
	ActivityID         int
	DurationMinutes    float64
	PercOfTimeTarget   float64
	DurationDiscomfort float64
}

// BuildPopActivities averages the duration in minutes of the modelled
// activities per (agent, activity). A missing start time takes the
// earliest known start and a missing end time the latest known end.
// Activities of persons without an agent are ignored. Rows are sorted by
// agent, then activity.
func BuildPopActivities(activities []Activity, persons []PersonAgent) []PopActivity {
	agentOf := make(map[int64]int, len(persons))
	for _, p := range persons {
		if p.AgentID != NoAgent {
			agentOf[p.PersonID] = p.AgentID
		}
	}

	minStart, maxEnd := math.Inf(1), math.Inf(-1)
	for _, a := range activities {
		if _, ok := activityID(a.Purpose); !ok {
			continue
		}
		if !math.IsNaN(a.StartTime) {
			minStart = math.Min(minStart, a.StartTime)
		}
		if !math.IsNaN(a.EndTime) {
			maxEnd = math.Max(maxEnd, a.EndTime)
		}
	}

	type key struct{ agent, activity int }
	type acc struct {
		sum float64
		n   int
	}
	sums := make(map[key]*acc)
	for _, a := range activities {
		id, ok := activityID(a.Purpose)
		if !ok {
			continue
		}
		agent, ok := agentOf[a.PersonID]
		if !ok {
			continue
		}
		start, end := a.StartTime, a.EndTime
		if math.IsNaN(start) {
			start = minStart
		}
		if math.IsNaN(end) {
			end = maxEnd
		}
		if math.IsInf(start, 0) || math.IsInf(end, 0) {
			continue
		}
		k := key{agent, id}
		if sums[k] == nil {
			sums[k] = &acc{}
		}
		sums[k].sum += (end - start) / 60
		sums[k].n++
	}

	out := make([]PopActivity, 0, len(sums))
	for k, a := range sums {
		out = append(out, PopActivity{
			AgentID:            k.agent,
			ActivityID:         k.activity,
			DurationMinutes:    math.RoundToEven(a.sum / float64(a.n)),
			PercOfTimeTarget:   PercOfTimeTarget,
			DurationDiscomfort: DurationDiscomfort,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AgentID != out[j].AgentID {
			return out[i].AgentID < out[j].AgentID
		}
		return out[i].ActivityID < out[j].ActivityID
	})
	return out
}
