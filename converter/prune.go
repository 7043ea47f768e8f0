package converter

import (
	"math"

	"github.com/theoremus-urban-solutions/entd-longdistance/utils"
)

// corruptTime reports an unknown, missing or negative elapsed time.
func corruptTime(elapsed float64) bool {
	return math.IsNaN(elapsed) || elapsed < 0 || utils.IsUnknownTimeSentinel(elapsed)
}

// pruneCorruptVacations drops every chain whose vacation has at least one
// corrupt departure or arrival. A vacation is kept or removed as a whole.
func pruneCorruptVacations(chains [][]tripRecord, warnings *WarningAggregator) (kept [][]tripRecord, prunedVacations, prunedTrips int) {
	corrupt := make(map[string]bool)
	for _, chain := range chains {
		for _, rec := range chain {
			if corrupt[rec.VacationID] {
				break
			}
			if corruptTime(rec.DepartureTime) || corruptTime(rec.ArrivalTime) {
				corrupt[rec.VacationID] = true
				warnings.Add(WarningCorruptVacation, rec.VacationID)
			}
		}
	}
	kept = make([][]tripRecord, 0, len(chains))
	for _, chain := range chains {
		if corrupt[chain[0].VacationID] {
			prunedTrips += len(chain)
			continue
		}
		kept = append(kept, chain)
	}
	return kept, len(corrupt), prunedTrips
}
