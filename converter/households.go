package converter

import (
	"strconv"

	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// ChildAgeLimit separates children from adults in consumption units.
const ChildAgeLimit = 14

// ConsumptionUnits weights household members on the modified OECD scale:
// 1 for the first adult, 0.5 per further adult, 0.3 per child.
func ConsumptionUnits(adults, children int) float64 {
	extraAdults := adults - 1
	if extraAdults < 0 {
		extraAdults = 0
	}
	return 1 + 0.5*float64(extraAdults) + 0.3*float64(children)
}

// assignConsumptionUnits sets one consumption-unit value per household.
// Households without linked persons get 1.
func assignConsumptionUnits(households []survey.Household, persons []survey.Person) {
	adults := make([]int, len(households))
	children := make([]int, len(households))
	for _, p := range persons {
		if p.Age >= 0 && p.Age < ChildAgeLimit {
			children[p.HouseholdID]++
		} else {
			adults[p.HouseholdID]++
		}
	}
	for i := range households {
		households[i].ConsumptionUnits = ConsumptionUnits(adults[i], children[i])
	}
}

// checkHouseholdSizes reports households whose declared size differs from
// the number of linked persons.
func checkHouseholdSizes(households []survey.Household, persons []survey.Person, warnings *WarningAggregator) int {
	linked := make([]int, len(households))
	for _, p := range persons {
		linked[p.HouseholdID]++
	}
	mismatches := 0
	for i, h := range households {
		if h.HouseholdSize != linked[i] {
			mismatches++
			warnings.Add(WarningHouseholdSize, strconv.FormatInt(h.ENTDHouseholdID, 10))
		}
	}
	return mismatches
}
