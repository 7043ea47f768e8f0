package converter

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Warning type constants
const (
	// Identity warnings
	WarningInvalidHouseholdID   = "invalid_household_id"
	WarningDuplicateHousehold   = "duplicate_household"
	WarningInvalidPersonID      = "invalid_person_id"
	WarningPersonNoHousehold    = "person_no_household"
	WarningTripNoPerson         = "trip_no_person"
	WarningDuplicateVacation    = "duplicate_vacation"
	WarningVacationNotInGeneral = "vacation_not_in_general"

	// Attribute warnings
	WarningMissingAge         = "missing_age"
	WarningMissingTripWeight  = "missing_trip_weight"
	WarningUnmappedPurpose    = "unmapped_purpose"
	WarningUnmappedMode       = "unmapped_mode"
	WarningUnknownIncome      = "unknown_income"
	WarningHouseholdSize      = "household_size_mismatch"
	WarningMissingSequence    = "missing_trip_sequence"
	WarningUnparsableTime     = "unparsable_time"
	WarningUnparsableStartDay = "unparsable_start_day"

	// Pruning
	WarningCorruptVacation = "corrupt_vacation"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects data-quality warnings during cleaning and logs
// one consolidated line per warning type. Safe for concurrent use.
type WarningAggregator struct {
	mu       sync.Mutex
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns the occurrences of one warning type.
func (w *WarningAggregator) Count(warningType string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// Examples returns up to three example ids of one warning type.
func (w *WarningAggregator) Examples(warningType string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if info := w.warnings[warningType]; info != nil {
		return append([]string(nil), info.examples...)
	}
	return nil
}

// Counts returns a copy of all warning counts.
func (w *WarningAggregator) Counts() map[string]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]int, len(w.warnings))
	for k, v := range w.warnings {
		out[k] = v.count
	}
	return out
}

// LogAll outputs all collected warnings in consolidated format, sorted by type
func (w *WarningAggregator) LogAll(logger *zap.Logger) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.warnings) == 0 {
		return
	}

	types := make([]string, 0, len(w.warnings))
	for t := range w.warnings {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, warningType := range types {
		info := w.warnings[warningType]
		description, action := describeWarning(warningType)
		logger.Warn(description,
			zap.String("warning", warningType),
			zap.Int("occurrences", info.count),
			zap.String("action", action),
			zap.String("examples", strings.Join(info.examples, ", ")),
		)
	}
}

// describeWarning returns a human-readable description and the recovery taken
func describeWarning(warningType string) (description, action string) {
	switch warningType {
	case WarningInvalidHouseholdID:
		return "households with a non-integer idENT_MEN", "Dropping household"
	case WarningDuplicateHousehold:
		return "households listed more than once", "Keeping first occurrence"
	case WarningInvalidPersonID:
		return "persons with a non-integer IDENT_IND", "Dropping person"
	case WarningPersonNoHousehold:
		return "persons whose household is not in the household table", "Dropping person"
	case WarningTripNoPerson:
		return "trips whose person is not in the person table", "Dropping trip"
	case WarningDuplicateVacation:
		return "vacations listed more than once in K_voyage", "Keeping first occurrence"
	case WarningVacationNotInGeneral:
		return "trips whose vacation is missing from K_voyage", "Keeping trip without vacation attributes"
	case WarningMissingAge:
		return "persons without age", "Treating person as adult"
	case WarningMissingTripWeight:
		return "trips without POIDS_VOY13", "Using weight 0"
	case WarningUnmappedPurpose:
		return "purpose codes matching no rule", "Using purpose 'other'"
	case WarningUnmappedMode:
		return "mode codes matching no rule", "Using mode 'pt'"
	case WarningUnknownIncome:
		return "households with an unknown income band", "Using income class -1"
	case WarningHouseholdSize:
		return "households whose declared size differs from linked persons", "Keeping declared size"
	case WarningMissingSequence:
		return "trips without OLDI sequence number", "Ordering after numbered trips"
	case WarningUnparsableTime:
		return "trips with an unparsable day or clock", "Marking time unknown"
	case WarningUnparsableStartDay:
		return "vacations with an unparsable start day", "Marking times unknown"
	case WarningCorruptVacation:
		return "vacations with unknown, missing or negative times", "Removing every trip of the vacation"
	default:
		return "unknown issue", "Continuing with fallback behavior"
	}
}
