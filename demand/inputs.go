package demand

import (
	"context"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// InputSeparator separates the fields of every demand input except the
// agents file, which is comma separated.
const InputSeparator = ';'

// AgentsSeparator is the separator of the agents file.
const AgentsSeparator = ','

// Zone is a city of the zoning with its centroid.
type Zone struct {
	Code string
	Name string
	Lat  float64
	Lng  float64
}

// Facility is a place offering activities to long-distance travellers.
type Facility struct {
	EnterpriseID string
	ActivityType string
	CommuneID    string
	X            float64
	Y            float64
}

// SyntheticPerson is a person of the synthetic population.
type SyntheticPerson struct {
	PersonID    int64
	HouseholdID int64
	Age         int
	Sex         survey.Sex
}

// SyntheticHousehold carries the household income; NaN when unknown.
type SyntheticHousehold struct {
	HouseholdID int64
	Income      float64
}

// Home is the WGS84 location of a synthetic household.
type Home struct {
	HouseholdID int64
	Lat         float64
	Lng         float64
}

// Activity is one activity of a synthetic plan. Times are seconds after
// midnight; NaN when missing.
type Activity struct {
	PersonID      int64
	ActivityIndex int
	Purpose       survey.Purpose
	StartTime     float64
	EndTime       float64
}

// LocatedTrip is a trip of a synthetic plan with its WGS84 end points.
type LocatedTrip struct {
	PersonID         int64
	TripIndex        int
	PrecedingPurpose survey.Purpose
	FollowingPurpose survey.Purpose
	OriginLat        float64
	OriginLng        float64
	DestinationLat   float64
	DestinationLng   float64
}

// Agent is a demand-model agent class. LAge and LIncome are the lower
// bounds of the class intervals.
type Agent struct {
	AgentID int
	LAge    int64
	LIncome int64
	Male    bool
}

// Paths locates the demand inputs. Empty paths are skipped and yield empty
// tables.
type Paths struct {
	Facilities   string
	Zones        string
	Persons      string
	Households   string
	Homes        string
	Activities   string
	LocatedTrips string
	Agents       string
}

// Inputs holds every decoded demand input.
type Inputs struct {
	Facilities   []Facility
	Zones        []Zone
	Persons      []SyntheticPerson
	Households   []SyntheticHousehold
	Homes        []Home
	Activities   []Activity
	LocatedTrips []LocatedTrip
	Agents       []Agent
}

var (
	facilitiesSchema = entd.FileSchema{Name: "facilities", Columns: []string{"enterprise_id", "activity_type", "commune_id", "x", "y"}}
	zonesSchema      = entd.FileSchema{Name: "zones", Columns: []string{"code", "name", "lat", "lng"}}
	personsSchema    = entd.FileSchema{Name: "persons", Columns: []string{"person_id", "household_id", "age", "sex"}}
	householdsSchema = entd.FileSchema{Name: "households", Columns: []string{"household_id", "income"}}
	homesSchema      = entd.FileSchema{Name: "homes", Columns: []string{"household_id", "lat", "lng"}}
	activitiesSchema = entd.FileSchema{Name: "activities", Columns: []string{"person_id", "activity_index", "purpose", "start_time", "end_time"}}
	tripsSchema      = entd.FileSchema{Name: "located_trips", Columns: []string{
		"person_id", "trip_index", "preceding_purpose", "following_purpose",
		"origin_lat", "origin_lng", "destination_lat", "destination_lng",
	}}
	agentsSchema = entd.FileSchema{Name: "agents", Columns: []string{"agent_id", "l_age", "l_income", "gender"}}
)

// LoadInputs reads all configured inputs concurrently.
func LoadInputs(ctx context.Context, paths Paths) (*Inputs, error) {
	in := &Inputs{}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	load := func(path string, schema entd.FileSchema, sep rune, decode func(*entd.Table)) {
		if path == "" {
			return
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := readInput(path, schema, sep)
			if err != nil {
				return err
			}
			mu.Lock()
			decode(t)
			mu.Unlock()
			return nil
		})
	}
	load(paths.Facilities, facilitiesSchema, InputSeparator, func(t *entd.Table) { in.Facilities = decodeFacilities(t) })
	load(paths.Zones, zonesSchema, InputSeparator, func(t *entd.Table) { in.Zones = decodeZones(t) })
	load(paths.Persons, personsSchema, InputSeparator, func(t *entd.Table) { in.Persons = decodePersons(t) })
	load(paths.Households, householdsSchema, InputSeparator, func(t *entd.Table) { in.Households = decodeHouseholds(t) })
	load(paths.Homes, homesSchema, InputSeparator, func(t *entd.Table) { in.Homes = decodeHomes(t) })
	load(paths.Activities, activitiesSchema, InputSeparator, func(t *entd.Table) { in.Activities = decodeActivities(t) })
	load(paths.LocatedTrips, tripsSchema, InputSeparator, func(t *entd.Table) { in.LocatedTrips = decodeLocatedTrips(t) })
	load(paths.Agents, agentsSchema, AgentsSeparator, func(t *entd.Table) { in.Agents = decodeAgents(t) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

func readInput(path string, schema entd.FileSchema, sep rune) (*entd.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &entd.MissingFileError{Name: schema.Name, Path: path}
	}
	defer f.Close()
	t, err := entd.ReadDelimited(f, schema, sep)
	if err != nil {
		var missing *entd.MissingFileError
		if errors.As(err, &missing) {
			missing.Path = path
			return nil, missing
		}
		return nil, errors.Wrapf(err, "read %s input", schema.Name)
	}
	return t, nil
}

func decodeFacilities(t *entd.Table) []Facility {
	out := make([]Facility, 0, t.Len())
	for i := range t.Rows {
		out = append(out, Facility{
			EnterpriseID: t.Get(i, "enterprise_id"),
			ActivityType: t.Get(i, "activity_type"),
			CommuneID:    t.Get(i, "commune_id"),
			X:            t.FloatOr(i, "x", math.NaN()),
			Y:            t.FloatOr(i, "y", math.NaN()),
		})
	}
	return out
}

func decodeZones(t *entd.Table) []Zone {
	out := make([]Zone, 0, t.Len())
	for i := range t.Rows {
		out = append(out, Zone{
			Code: t.Get(i, "code"),
			Name: t.Get(i, "name"),
			Lat:  t.FloatOr(i, "lat", math.NaN()),
			Lng:  t.FloatOr(i, "lng", math.NaN()),
		})
	}
	return out
}

func decodePersons(t *entd.Table) []SyntheticPerson {
	out := make([]SyntheticPerson, 0, t.Len())
	for i := range t.Rows {
		out = append(out, SyntheticPerson{
			PersonID:    t.IntOr(i, "person_id", -1),
			HouseholdID: t.IntOr(i, "household_id", -1),
			Age:         int(t.IntOr(i, "age", -1)),
			Sex:         survey.Sex(strings.ToLower(t.Get(i, "sex"))),
		})
	}
	return out
}

func decodeHouseholds(t *entd.Table) []SyntheticHousehold {
	out := make([]SyntheticHousehold, 0, t.Len())
	for i := range t.Rows {
		out = append(out, SyntheticHousehold{
			HouseholdID: t.IntOr(i, "household_id", -1),
			Income:      t.FloatOr(i, "income", math.NaN()),
		})
	}
	return out
}

func decodeHomes(t *entd.Table) []Home {
	out := make([]Home, 0, t.Len())
	for i := range t.Rows {
		out = append(out, Home{
			HouseholdID: t.IntOr(i, "household_id", -1),
			Lat:         t.FloatOr(i, "lat", math.NaN()),
			Lng:         t.FloatOr(i, "lng", math.NaN()),
		})
	}
	return out
}

func decodeActivities(t *entd.Table) []Activity {
	out := make([]Activity, 0, t.Len())
	for i := range t.Rows {
		out = append(out, Activity{
			PersonID:      t.IntOr(i, "person_id", -1),
			ActivityIndex: int(t.IntOr(i, "activity_index", -1)),
			Purpose:       survey.Purpose(t.Get(i, "purpose")),
			StartTime:     t.FloatOr(i, "start_time", math.NaN()),
			EndTime:       t.FloatOr(i, "end_time", math.NaN()),
		})
	}
	return out
}

func decodeLocatedTrips(t *entd.Table) []LocatedTrip {
	out := make([]LocatedTrip, 0, t.Len())
	for i := range t.Rows {
		out = append(out, LocatedTrip{
			PersonID:         t.IntOr(i, "person_id", -1),
			TripIndex:        int(t.IntOr(i, "trip_index", -1)),
			PrecedingPurpose: survey.Purpose(t.Get(i, "preceding_purpose")),
			FollowingPurpose: survey.Purpose(t.Get(i, "following_purpose")),
			OriginLat:        t.FloatOr(i, "origin_lat", math.NaN()),
			OriginLng:        t.FloatOr(i, "origin_lng", math.NaN()),
			DestinationLat:   t.FloatOr(i, "destination_lat", math.NaN()),
			DestinationLng:   t.FloatOr(i, "destination_lng", math.NaN()),
		})
	}
	return out
}

func decodeAgents(t *entd.Table) []Agent {
	out := make([]Agent, 0, t.Len())
	for i := range t.Rows {
		out = append(out, Agent{
			AgentID: int(t.IntOr(i, "agent_id", -1)),
			LAge:    t.IntOr(i, "l_age", -1),
			LIncome: t.IntOr(i, "l_income", -1),
			Male:    parseGender(t.Get(i, "gender")),
		})
	}
	return out
}

// parseGender accepts boolean and numeric encodings; true and non-zero
// numbers are male.
func parseGender(s string) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if v, ok := entd.ParseFloat(s); ok {
		return v != 0
	}
	return false
}
