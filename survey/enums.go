package survey

// Purpose is the activity performed at the end (or start) of a trip.
type Purpose string

const (
	PurposeHome       Purpose = "home"
	PurposeSchoolTrip Purpose = "school_trip"
	PurposeShop       Purpose = "shop"
	PurposeOther      Purpose = "other"
	PurposeVisits     Purpose = "visits"
	PurposeHoliday    Purpose = "holiday"
	PurposeBusiness   Purpose = "business"
)

// Purposes lists every purpose in declaration order.
var Purposes = []Purpose{
	PurposeHome,
	PurposeSchoolTrip,
	PurposeShop,
	PurposeOther,
	PurposeVisits,
	PurposeHoliday,
	PurposeBusiness,
}

// Valid reports whether p is one of the declared purposes.
func (p Purpose) Valid() bool {
	for _, candidate := range Purposes {
		if p == candidate {
			return true
		}
	}
	return false
}

// Mode is the main transport mode of a trip.
type Mode string

const (
	ModeWalk                Mode = "walk"
	ModeCar                 Mode = "car"
	ModeCarPassenger        Mode = "car_passenger"
	ModeBike                Mode = "bike"
	ModePTTaxi              Mode = "pt_taxi"
	ModePTRegional          Mode = "pt_regional"
	ModePTLongDistanceTrain Mode = "pt_LongDistanceTrains"
	ModePTAirplane          Mode = "pt_Airplane"
	ModePTBoat              Mode = "pt_boat"
	// ModePT is the unclassified public transport fallback.
	ModePT Mode = "pt"
)

var Modes = []Mode{
	ModeWalk,
	ModeCar,
	ModeCarPassenger,
	ModeBike,
	ModePTTaxi,
	ModePTRegional,
	ModePTLongDistanceTrain,
	ModePTAirplane,
	ModePTBoat,
	ModePT,
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	for _, candidate := range Modes {
		if m == candidate {
			return true
		}
	}
	return false
}

type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// SexFromCode maps the SEXE survey code (1 male, 2 female).
func SexFromCode(code int, ok bool) Sex {
	if !ok {
		return SexUnknown
	}
	switch code {
	case 1:
		return SexMale
	case 2:
		return SexFemale
	default:
		return SexUnknown
	}
}
