package converter

import (
	"strconv"

	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// UnknownAge marks a person whose AGE is missing.
const UnknownAge = -1

// defaultSocioprofessionalCode is used when CS24 is missing.
const defaultSocioprofessionalCode = 80

func fillHousehold(h *survey.Household, tcm *entd.Table, row int, menage *entd.Table, menageRow int, warnings *WarningAggregator) {
	h.HouseholdWeight = tcm.FloatOr(row, "PONDV1", 0)
	h.HouseholdSize = int(tcm.IntOr(row, "NPERS", 0))
	h.DepartementID = departementOrUndefined(tcm.Get(row, "DEP"))

	income, ok := survey.IncomeRules.Resolve(tcm.Get(row, "TrancheRevenuMensuel"))
	if !ok {
		warnings.Add(WarningUnknownIncome, strconv.FormatInt(h.ENTDHouseholdID, 10))
	}
	h.IncomeClass = income

	if menageRow >= 0 {
		h.NumberOfVehicles = int(menage.IntOr(menageRow, "V1_JNBVEH", 0) +
			menage.IntOr(menageRow, "V1_JNBMOTO", 0) +
			menage.IntOr(menageRow, "V1_JNBCYCLO", 0))
		h.NumberOfBikes = int(menage.IntOr(menageRow, "V1_JNBVELOADT", 0))
	}
}

func fillPerson(p *survey.Person, tcm *entd.Table, row int, individu *entd.Table, individuRow int, warnings *WarningAggregator) {
	p.PersonWeight = tcm.FloatOr(row, "PONDV1", 0)
	p.DepartementID = departementOrUndefined(tcm.Get(row, "DEP"))

	age, ok := tcm.Int(row, "AGE")
	if ok {
		p.Age = int(age)
	} else {
		p.Age = UnknownAge
		warnings.Add(WarningMissingAge, strconv.FormatInt(p.ENTDPersonID, 10))
	}

	sex, ok := tcm.Int(row, "SEXE")
	p.Sex = survey.SexFromCode(int(sex), ok)

	situa, _ := tcm.Int(row, "SITUA")
	p.Employed = situa == 1 || situa == 2

	etudes, ok := tcm.Int(row, "ETUDES")
	p.Studies = !ok || etudes == 1
	if p.Age >= 0 && p.Age < 5 {
		p.Studies = false
	}

	p.SocioprofessionalClass = int(tcm.IntOr(row, "CS24", defaultSocioprofessionalCode)) / 10

	if individuRow >= 0 {
		p.HasLicense = individu.IntOr(individuRow, "V1_GPERMIS", 0) == 1 ||
			individu.IntOr(individuRow, "V1_GPERMIS2R", 0) == 1
		p.HasPTSubscription = individu.IntOr(individuRow, "V1_ICARTABON", 0) == 1
	}
}

// derivePersonTripAttributes sets number_of_trips and is_passenger from the
// ordered, unpruned trips.
func derivePersonTripAttributes(persons []survey.Person, chains [][]tripRecord) {
	seen := make(map[int]bool, len(persons))
	for _, chain := range chains {
		for _, rec := range chain {
			p := &persons[rec.personIndex]
			if rec.Mode == survey.ModeCarPassenger {
				p.IsPassenger = true
			}
			if seen[rec.personIndex] {
				continue
			}
			seen[rec.personIndex] = true
			if rec.hasDeclared {
				p.NumberOfTrips = int(rec.declaredTrips)
			} else {
				p.NumberOfTrips = len(chain)
			}
		}
	}
	for i := range persons {
		if persons[i].IsKish && !seen[i] {
			persons[i].NumberOfTrips = 0
		}
	}
}
