package converter

import (
	"math"
	"strconv"

	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
	"github.com/theoremus-urban-solutions/entd-longdistance/utils"
)

// unresolved collects rows dropped by a foreign-key join.
type unresolved struct {
	relation string
	count    int
	examples []string
}

func (u *unresolved) add(id string) {
	u.count++
	if len(u.examples) < 3 {
		u.examples = append(u.examples, id)
	}
}

func (u *unresolved) err() error {
	if u.count == 0 {
		return nil
	}
	return &ForeignKeyError{Relation: u.relation, Count: u.count, Examples: u.examples}
}

// firstRowIndex maps an integer key column to the first row carrying it.
func firstRowIndex(t *entd.Table, column string) map[int64]int {
	idx := make(map[int64]int, t.Len())
	for i := 0; i < t.Len(); i++ {
		id, ok := t.Int(i, column)
		if !ok {
			continue
		}
		if _, seen := idx[id]; !seen {
			idx[id] = i
		}
	}
	return idx
}

// unifyHouseholds builds households from Q_tcm_menage_0 left-joined with
// Q_menage, assigning dense ids in file order.
func unifyHouseholds(raw *entd.Extract, warnings *WarningAggregator) ([]survey.Household, map[int64]int) {
	tcm, menage := raw.TCMMenage, raw.Menage
	menageIdx := firstRowIndex(menage, "idENT_MEN")

	households := make([]survey.Household, 0, tcm.Len())
	byENTD := make(map[int64]int, tcm.Len())
	for i := 0; i < tcm.Len(); i++ {
		id, ok := tcm.Int(i, "idENT_MEN")
		if !ok {
			warnings.Add(WarningInvalidHouseholdID, tcm.Get(i, "idENT_MEN"))
			continue
		}
		if _, dup := byENTD[id]; dup {
			warnings.Add(WarningDuplicateHousehold, strconv.FormatInt(id, 10))
			continue
		}
		menageRow := -1
		if r, ok := menageIdx[id]; ok {
			menageRow = r
		}
		h := survey.Household{
			HouseholdID:     len(households),
			ENTDHouseholdID: id,
		}
		fillHousehold(&h, tcm, i, menage, menageRow, warnings)
		byENTD[id] = h.HouseholdID
		households = append(households, h)
	}
	return households, byENTD
}

// unifyPersons builds persons from Q_tcm_individu left-joined with
// Q_individu and the first detail row per person, then resolves each
// person's household. Persons without household are dropped and reported.
func unifyPersons(raw *entd.Extract, households map[int64]int, warnings *WarningAggregator) ([]survey.Person, map[int64]int, *unresolved) {
	tcm, individu, det := raw.TCMIndividu, raw.Individu, raw.VoyageDet
	individuIdx := firstRowIndex(individu, "IDENT_IND")
	firstDetail := firstRowIndex(det, "IDENT_IND")
	missing := &unresolved{relation: "person->household"}

	persons := make([]survey.Person, 0, tcm.Len())
	byENTD := make(map[int64]int, tcm.Len())
	for i := 0; i < tcm.Len(); i++ {
		id, ok := tcm.Int(i, "IDENT_IND")
		if !ok {
			warnings.Add(WarningInvalidPersonID, tcm.Get(i, "IDENT_IND"))
			continue
		}
		hhENTD, _ := tcm.Int(i, "IDENT_MEN")
		householdID, ok := households[hhENTD]
		if !ok {
			missing.add(strconv.FormatInt(id, 10))
			warnings.Add(WarningPersonNoHousehold, strconv.FormatInt(id, 10))
			continue
		}
		individuRow := -1
		if r, ok := individuIdx[id]; ok {
			individuRow = r
		}
		p := survey.Person{
			PersonID:      len(persons),
			ENTDPersonID:  id,
			HouseholdID:   householdID,
			NumberOfTrips: -1,
		}
		if r, ok := firstDetail[id]; ok {
			p.IsKish = true
			p.TripWeight = det.FloatOr(r, "POIDS_VOY13", 0)
		}
		fillPerson(&p, tcm, i, individu, individuRow, warnings)
		if _, dup := byENTD[id]; !dup {
			byENTD[id] = p.PersonID
		}
		persons = append(persons, p)
	}
	return persons, byENTD, missing
}

// unifyTrips joins K_voydepdet N:1 with K_voyage on IDENT_VOY, then to
// persons on IDENT_IND. Categorical and temporal fields are resolved here;
// chain fields are left for reconstructChains.
func unifyTrips(raw *entd.Extract, persons []survey.Person, byENTD map[int64]int, warnings *WarningAggregator) ([]tripRecord, *unresolved) {
	det, voyage := raw.VoyageDet, raw.Voyage
	missing := &unresolved{relation: "trip->person"}

	voyageIdx := make(map[string]int, voyage.Len())
	for i := 0; i < voyage.Len(); i++ {
		id := voyage.Get(i, "IDENT_VOY")
		if _, dup := voyageIdx[id]; dup {
			warnings.Add(WarningDuplicateVacation, id)
			continue
		}
		voyageIdx[id] = i
	}

	origins := make(map[string]vacationOrigin)
	records := make([]tripRecord, 0, det.Len())
	for i := 0; i < det.Len(); i++ {
		personENTD, ok := det.Int(i, "IDENT_IND")
		personIndex, found := byENTD[personENTD]
		if !ok || !found {
			missing.add(det.Get(i, "IDENT_IND"))
			warnings.Add(WarningTripNoPerson, det.Get(i, "IDENT_IND"))
			continue
		}
		person := persons[personIndex]
		vacationID := det.Get(i, "IDENT_VOY")
		vr, hasGeneral := voyageIdx[vacationID]
		if !hasGeneral {
			vr = -1
			warnings.Add(WarningVacationNotInGeneral, vacationID)
		}

		rec := tripRecord{
			Trip: survey.Trip{
				ENTDPersonID: personENTD,
				PersonID:     person.PersonID,
				HouseholdID:  person.HouseholdID,
				VacationID:   vacationID,
			},
			personIndex: personIndex,
			order:       i,
		}
		rec.sequence, rec.hasSequence = det.Int(i, "OLDI")
		if !rec.hasSequence {
			warnings.Add(WarningMissingSequence, vacationID)
		}
		rec.declaredTrips, rec.hasDeclared = det.Int(i, "NBD")

		if w, ok := det.Float(i, "POIDS_VOY13"); ok {
			rec.TripWeight = w
		} else {
			warnings.Add(WarningMissingTripWeight, vacationID)
		}
		rec.RoutedDistance = utils.KilometersToMeters(det.FloatOr(i, "V2_OLDKM", math.NaN()))

		purpose, matched := survey.PurposeRules.Resolve(det.Get(i, "V2_OLDMOT"))
		if !matched {
			warnings.Add(WarningUnmappedPurpose, det.Get(i, "V2_OLDMOT"))
		}
		rec.FollowingPurpose = purpose
		mode, matched := survey.ModeRules.Resolve(det.Get(i, "V2_OLDMT1S"))
		if !matched {
			warnings.Add(WarningUnmappedMode, det.Get(i, "V2_OLDMT1S"))
		}
		rec.Mode = mode

		rec.OriginDepartementID = survey.UndefinedDepartement
		rec.DestinationDepartementID = survey.UndefinedDepartement
		rec.VacationMainPurpose = survey.PurposeRules.Default
		rec.VacationMainMode = survey.ModeRules.Default
		if vr >= 0 {
			rec.DepartureDay = voyage.Get(vr, "V2_OLDDEBJ")
			rec.ReturnDay = voyage.Get(vr, "V2_OLDFINJ")
			rec.OriginDepartementID = departementOrUndefined(voyage.Get(vr, "DEP"))
			rec.DestinationDepartementID = departementOrUndefined(voyage.Get(vr, "V2_OLDVDEP"))
			rec.VacationMainPurpose = survey.PurposeRules.Map(voyage.Get(vr, "V2_OLDMOTPR"))
			rec.VacationMainMode = survey.ModeRules.Map(voyage.Get(vr, "V2_OLDMTPP"))
		}

		origin, seen := origins[rec.DepartureDay]
		if !seen {
			origin = newVacationOrigin(rec.DepartureDay)
			origins[rec.DepartureDay] = origin
		}
		if !origin.ok {
			warnings.Add(WarningUnparsableStartDay, vacationID)
		}
		var err error
		if rec.DepartureTime, err = origin.elapsed(det.Get(i, "V2_OLDDEJ"), det.Get(i, "V2_OLDDEH")); err != nil {
			warnings.Add(WarningUnparsableTime, vacationID)
		}
		if rec.ArrivalTime, err = origin.elapsed(det.Get(i, "V2_OLDARJ"), det.Get(i, "V2_OLDARH")); err != nil {
			warnings.Add(WarningUnparsableTime, vacationID)
		}
		rec.TripDuration = rec.ArrivalTime - rec.DepartureTime

		records = append(records, rec)
	}
	return records, missing
}

func departementOrUndefined(dep string) string {
	if dep == "" {
		return survey.UndefinedDepartement
	}
	return dep
}
