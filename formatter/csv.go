package formatter

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// Separators of the written tables.
const (
	TripSeparator  = ','
	TableSeparator = ';'
)

// TripColumns is the fixed column order of the trips table.
var TripColumns = []string{
	"entd_person_id", "person_id", "household_id", "vacation_id",
	"trip_weight", "trip_id", "is_first_trip", "is_last_trip",
	"departure_day", "return_day", "departure_time", "arrival_time", "trip_duration", "activity_duration",
	"routed_distance", "mode", "preceding_purpose", "following_purpose",
	"origin_departement_id", "destination_departement_id",
	"vacation_main_purpose", "vacation_main_mode",
}

// HouseholdColumns is the column order of the households table.
var HouseholdColumns = []string{
	"household_id", "entd_household_id", "household_weight", "household_size",
	"number_of_vehicles", "number_of_bikes", "income_class", "departement_id", "consumption_units",
}

// PersonColumns is the column order of the persons table.
var PersonColumns = []string{
	"person_id", "entd_person_id", "household_id", "person_weight", "trip_weight", "is_kish",
	"age", "sex", "employed", "studies", "has_license", "has_pt_subscription",
	"socioprofessional_class", "number_of_trips", "is_passenger", "departement_id",
}

// FormatFloat renders a float without trailing zeros; NaN is empty.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func itoa(v int) string { return strconv.Itoa(v) }

// WriteTrips writes the trips table, comma separated, NaN as empty cells.
func WriteTrips(w io.Writer, trips []survey.Trip) error {
	return writeTable(w, TripSeparator, TripColumns, len(trips), func(i int) []string {
		t := trips[i]
		return []string{
			strconv.FormatInt(t.ENTDPersonID, 10), itoa(t.PersonID), itoa(t.HouseholdID), t.VacationID,
			FormatFloat(t.TripWeight), itoa(t.TripID), strconv.FormatBool(t.IsFirstTrip), strconv.FormatBool(t.IsLastTrip),
			t.DepartureDay, t.ReturnDay, FormatFloat(t.DepartureTime), FormatFloat(t.ArrivalTime),
			FormatFloat(t.TripDuration), FormatFloat(t.ActivityDuration),
			FormatFloat(t.RoutedDistance), string(t.Mode), string(t.PrecedingPurpose), string(t.FollowingPurpose),
			t.OriginDepartementID, t.DestinationDepartementID,
			string(t.VacationMainPurpose), string(t.VacationMainMode),
		}
	})
}

// WriteHouseholds writes the households table, ';' separated.
func WriteHouseholds(w io.Writer, households []survey.Household) error {
	return writeTable(w, TableSeparator, HouseholdColumns, len(households), func(i int) []string {
		h := households[i]
		return []string{
			itoa(h.HouseholdID), strconv.FormatInt(h.ENTDHouseholdID, 10), FormatFloat(h.HouseholdWeight),
			itoa(h.HouseholdSize), itoa(h.NumberOfVehicles), itoa(h.NumberOfBikes), itoa(h.IncomeClass),
			h.DepartementID, FormatFloat(h.ConsumptionUnits),
		}
	})
}

// WritePersons writes the persons table, ';' separated.
func WritePersons(w io.Writer, persons []survey.Person) error {
	return writeTable(w, TableSeparator, PersonColumns, len(persons), func(i int) []string {
		p := persons[i]
		return []string{
			itoa(p.PersonID), strconv.FormatInt(p.ENTDPersonID, 10), itoa(p.HouseholdID),
			FormatFloat(p.PersonWeight), FormatFloat(p.TripWeight), strconv.FormatBool(p.IsKish),
			itoa(p.Age), string(p.Sex), strconv.FormatBool(p.Employed), strconv.FormatBool(p.Studies),
			strconv.FormatBool(p.HasLicense), strconv.FormatBool(p.HasPTSubscription),
			itoa(p.SocioprofessionalClass), itoa(p.NumberOfTrips), strconv.FormatBool(p.IsPassenger),
			p.DepartementID,
		}
	})
}

// WriteRecords writes a header and rows with the given separator.
func WriteRecords(w io.Writer, sep rune, header []string, rows [][]string) error {
	return writeTable(w, sep, header, len(rows), func(i int) []string { return rows[i] })
}

func writeTable(w io.Writer, sep rune, header []string, n int, row func(int) []string) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush table")
}
