package converter

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// Cleaner turns a raw ENTD extract into cleaned households, persons and
// long-distance trips.
type Cleaner struct {
	opts   Options
	logger *zap.Logger
}

// NewCleaner creates a cleaner. A nil logger discards output.
func NewCleaner(opts Options, logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{opts: opts, logger: logger}
}

// Clean runs identity unification, temporal normalisation, categorical
// mapping, chain reconstruction and pruning. The extract is not modified.
func (c *Cleaner) Clean(ctx context.Context, raw *entd.Extract) (*Result, error) {
	if raw == nil {
		return nil, errors.New("nil ENTD extract")
	}
	warnings := NewWarningAggregator()

	households, householdIdx := unifyHouseholds(raw, warnings)
	persons, personIdx, orphanPersons := unifyPersons(raw, householdIdx, warnings)
	if c.opts.StrictForeignKeys {
		if err := orphanPersons.err(); err != nil {
			return nil, err
		}
	}
	records, orphanTrips := unifyTrips(raw, persons, personIdx, warnings)
	if c.opts.StrictForeignKeys {
		if err := orphanTrips.err(); err != nil {
			return nil, err
		}
	}
	c.logger.Info("unified ENTD tables",
		zap.Int("households", len(households)),
		zap.Int("persons", len(persons)),
		zap.Int("trips", len(records)),
		zap.Int("persons_without_household", orphanPersons.count),
		zap.Int("trips_without_person", orphanTrips.count),
	)

	chains := groupChains(records)
	if err := reconstructChains(ctx, chains, c.opts.ChainWorkers); err != nil {
		return nil, errors.Wrap(err, "reconstruct chains")
	}
	derivePersonTripAttributes(persons, chains)

	kept, prunedVacations, prunedTrips := pruneCorruptVacations(chains, warnings)
	c.logger.Info("pruned corrupt vacations",
		zap.Int("vacations", prunedVacations),
		zap.Int("trips", prunedTrips),
	)

	mismatches := checkHouseholdSizes(households, persons, warnings)
	assignConsumptionUnits(households, persons)

	trips := flattenChains(kept)
	warnings.LogAll(c.logger)

	return &Result{
		Households: households,
		Persons:    persons,
		Trips:      trips,
		Diagnostics: Diagnostics{
			HouseholdRows:           raw.TCMMenage.Len(),
			PersonRows:              raw.TCMIndividu.Len(),
			TripRows:                raw.VoyageDet.Len(),
			PersonsWithoutHousehold: orphanPersons.count,
			TripsWithoutPerson:      orphanTrips.count,
			PrunedVacations:         prunedVacations,
			PrunedTrips:             prunedTrips,
			HouseholdSizeMismatches: mismatches,
			Warnings:                warnings.Counts(),
		},
	}, nil
}

// flattenChains emits the surviving trips in chain order with dense ids.
func flattenChains(chains [][]tripRecord) []survey.Trip {
	n := 0
	for _, chain := range chains {
		n += len(chain)
	}
	trips := make([]survey.Trip, 0, n)
	for _, chain := range chains {
		for _, rec := range chain {
			t := rec.Trip
			t.TripID = len(trips)
			trips = append(trips, t)
		}
	}
	return trips
}
