package demand

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultAgentCount is the number of agent classes of the demand model.
const DefaultAgentCount = 40

// Options parameterise Prepare.
type Options struct {
	SamplingRate        float64
	AgentCount          int
	MaxLocateDistanceKm float64

	// Locator overrides the centroid locator built from the zones.
	Locator CityLocator
}

// Outputs are the demand tables.
type Outputs struct {
	Activities         []ActivityType
	ActCity            []ActCity
	PopActivities      []PopActivity
	Residence          []Residence
	Cities             []City
	ProbByActivity     []DestinationProbability
	Probabilities      []ODProbability
	SecondaryLocations []SecondaryLocation
	PersonAgents       []PersonAgent
	UnmatchedPersons   int
	ResidenceStats     ResidenceStats
	ODStats            ODStats
}

// ErrNoZones is returned when the zoning is empty.
var ErrNoZones = errors.New("no zones to build cities from")

// Prepare runs every demand builder over the inputs.
func Prepare(ctx context.Context, in *Inputs, opts Options, logger *zap.Logger) (*Outputs, error) {
	if len(in.Zones) == 0 {
		return nil, ErrNoZones
	}
	if opts.AgentCount <= 0 {
		opts.AgentCount = DefaultAgentCount
	}
	out := &Outputs{Activities: ActivityTypes}

	cities := NewCities(in.Zones)
	locator := opts.Locator
	if locator == nil {
		locator = NewCentroidLocator(cities, opts.MaxLocateDistanceKm)
	}

	out.PersonAgents, out.UnmatchedPersons = ClassifyPopulation(in.Persons, in.Households, in.Agents)
	if out.UnmatchedPersons > 0 {
		logger.Warn("persons without agent class",
			zap.Int("persons", out.UnmatchedPersons),
			zap.Int("total", len(in.Persons)))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.Residence, out.ResidenceStats = BuildResidence(out.PersonAgents, in.Homes, cities, locator, opts.SamplingRate, opts.AgentCount)
	out.Cities = WithPopulation(cities, out.Residence)
	out.ActCity = BuildActCity(out.Cities)
	logger.Info("built residence",
		zap.Int("cities", len(out.Cities)),
		zap.Int("rows", len(out.Residence)),
		zap.Int("without_home", out.ResidenceStats.WithoutHome),
		zap.Int("unlocated", out.ResidenceStats.Unlocated),
		zap.Int("agent_out_of_range", out.ResidenceStats.AgentOutOfRange))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.PopActivities = BuildPopActivities(in.Activities, out.PersonAgents)
	out.ProbByActivity, out.Probabilities, out.ODStats = BuildODProbabilities(in.LocatedTrips, out.Cities, locator)
	logger.Info("built destination probabilities",
		zap.Int("trips", len(in.LocatedTrips)),
		zap.Int("out_of_scope", out.ODStats.OutOfScope),
		zap.Int("unlocated", out.ODStats.Unlocated))

	out.SecondaryLocations = BuildSecondaryLocations(in.Facilities)
	return out, nil
}
