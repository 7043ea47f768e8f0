package converter

import (
	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// Options contains everything the cleaning stage needs. It has no
// dependency on configuration files.
type Options struct {
	// StrictForeignKeys turns unresolved person->household and
	// trip->person references into a *ForeignKeyError instead of dropping
	// the rows with a warning.
	StrictForeignKeys bool

	// ChainWorkers bounds concurrent chain reconstruction. Values below 1
	// mean one worker.
	ChainWorkers int
}

// Diagnostics counts the data-quality events of one cleaning run.
type Diagnostics struct {
	HouseholdRows           int            `json:"household_rows"`
	PersonRows              int            `json:"person_rows"`
	TripRows                int            `json:"trip_rows"`
	PersonsWithoutHousehold int            `json:"persons_without_household"`
	TripsWithoutPerson      int            `json:"trips_without_person"`
	PrunedVacations         int            `json:"pruned_vacations"`
	PrunedTrips             int            `json:"pruned_trips"`
	HouseholdSizeMismatches int            `json:"household_size_mismatches"`
	Warnings                map[string]int `json:"warnings"`
}

// Result is the output of a cleaning run.
type Result struct {
	Households  []survey.Household
	Persons     []survey.Person
	Trips       []survey.Trip
	Diagnostics Diagnostics
}

// tripRecord is a trip under construction together with the ordering keys
// that do not survive into the output.
type tripRecord struct {
	survey.Trip
	personIndex   int
	sequence      int64
	hasSequence   bool
	declaredTrips int64
	hasDeclared   bool
	order         int
}
