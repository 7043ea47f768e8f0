package survey

import "math"

// Household is one cleaned ENTD household.
type Household struct {
	HouseholdID      int     `json:"household_id"`
	ENTDHouseholdID  int64   `json:"entd_household_id"`
	HouseholdWeight  float64 `json:"household_weight"`
	HouseholdSize    int     `json:"household_size"`
	NumberOfVehicles int     `json:"number_of_vehicles"`
	NumberOfBikes    int     `json:"number_of_bikes"`
	IncomeClass      int     `json:"income_class"`
	DepartementID    string  `json:"departement_id"`
	ConsumptionUnits float64 `json:"consumption_units"`
}

// Person is one cleaned ENTD individual.
type Person struct {
	PersonID               int     `json:"person_id"`
	ENTDPersonID           int64   `json:"entd_person_id"`
	HouseholdID            int     `json:"household_id"`
	PersonWeight           float64 `json:"person_weight"`
	TripWeight             float64 `json:"trip_weight"`
	IsKish                 bool    `json:"is_kish"`
	Age                    int     `json:"age"`
	Sex                    Sex     `json:"sex"`
	Employed               bool    `json:"employed"`
	Studies                bool    `json:"studies"`
	HasLicense             bool    `json:"has_license"`
	HasPTSubscription      bool    `json:"has_pt_subscription"`
	SocioprofessionalClass int     `json:"socioprofessional_class"`
	NumberOfTrips          int     `json:"number_of_trips"`
	IsPassenger            bool    `json:"is_passenger"`
	DepartementID          string  `json:"departement_id"`
}

// Trip is one leg of a long-distance vacation chain. Times are seconds
// elapsed since midnight of the vacation's departure day; ActivityDuration
// is NaN for the last trip of a chain.
type Trip struct {
	TripID                   int     `json:"trip_id"`
	ENTDPersonID             int64   `json:"entd_person_id"`
	PersonID                 int     `json:"person_id"`
	HouseholdID              int     `json:"household_id"`
	VacationID               string  `json:"vacation_id"`
	TripWeight               float64 `json:"trip_weight"`
	IsFirstTrip              bool    `json:"is_first_trip"`
	IsLastTrip               bool    `json:"is_last_trip"`
	DepartureDay             string  `json:"departure_day"`
	ReturnDay                string  `json:"return_day"`
	DepartureTime            float64 `json:"departure_time"`
	ArrivalTime              float64 `json:"arrival_time"`
	TripDuration             float64 `json:"trip_duration"`
	ActivityDuration         float64 `json:"activity_duration"`
	RoutedDistance           float64 `json:"routed_distance"`
	Mode                     Mode    `json:"mode"`
	PrecedingPurpose         Purpose `json:"preceding_purpose"`
	FollowingPurpose         Purpose `json:"following_purpose"`
	OriginDepartementID      string  `json:"origin_departement_id"`
	DestinationDepartementID string  `json:"destination_departement_id"`
	VacationMainPurpose      Purpose `json:"vacation_main_purpose"`
	VacationMainMode         Mode    `json:"vacation_main_mode"`
}

// HasActivityDuration reports whether the trip is followed by another trip
// of the same chain.
func (t Trip) HasActivityDuration() bool {
	return !math.IsNaN(t.ActivityDuration)
}

// UndefinedDepartement replaces missing departement codes.
const UndefinedDepartement = "undefined"
