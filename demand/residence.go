package demand

// Residence is the scaled number of persons of one agent class living in a
// city.
type Residence struct {
	AgentID  int
	CityID   int
	CityName string
	Size     float64
}

// ResidenceStats counts the persons left out of the residence table.
type ResidenceStats struct {
	WithoutAgent    int
	WithoutHome     int
	Unlocated       int
	AgentOutOfRange int
}

// BuildResidence counts persons per (city, agent) from their household's
// home and scales the counts by 1/samplingRate. Every agent in
// [0, agentCount) appears for every city, with size 0 when nobody lives
// there. Rows are sorted by city code, then agent.
func BuildResidence(persons []PersonAgent, homes []Home, cities []City, locator CityLocator, samplingRate float64, agentCount int) ([]Residence, ResidenceStats) {
	var stats ResidenceStats
	homeCity := make(map[int64]int, len(homes))
	located := make(map[int64]bool, len(homes))
	for _, h := range homes {
		if _, seen := located[h.HouseholdID]; seen {
			continue
		}
		id, ok := locator.CityOf(h.Lat, h.Lng)
		located[h.HouseholdID] = ok
		if ok {
			homeCity[h.HouseholdID] = id
		}
	}

	type key struct{ city, agent int }
	counts := make(map[key]int)
	for _, p := range persons {
		if p.AgentID == NoAgent {
			stats.WithoutAgent++
			continue
		}
		ok, seen := located[p.HouseholdID]
		switch {
		case !seen:
			stats.WithoutHome++
			continue
		case !ok:
			stats.Unlocated++
			continue
		}
		if p.AgentID < 0 || p.AgentID >= agentCount {
			stats.AgentOutOfRange++
			continue
		}
		counts[key{homeCity[p.HouseholdID], p.AgentID}]++
	}

	if samplingRate <= 0 {
		samplingRate = 1
	}
	out := make([]Residence, 0, len(cities)*agentCount)
	for _, ci := range cityOrder(cities) {
		c := cities[ci]
		for agent := 0; agent < agentCount; agent++ {
			out = append(out, Residence{
				AgentID:  agent,
				CityID:   c.ID,
				CityName: c.Name,
				Size:     float64(counts[key{c.ID, agent}]) / samplingRate,
			})
		}
	}
	return out, stats
}
