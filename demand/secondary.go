package demand

import (
	"fmt"
)

// VacationActivity is the facility activity type offering vacation.
const VacationActivity = "vacation"

// SecondaryLocation is a facility usable as a long-distance destination.
type SecondaryLocation struct {
	DestinationID  int
	LocationID     string
	EnterpriseID   string
	ActivityType   string
	CommuneID      string
	X              float64
	Y              float64
	OffersVacation bool
	OffersOther    bool
}

// BuildSecondaryLocations numbers the facilities in input order. Visits
// happen at residential locations, so only vacation facilities are
// flagged; every other facility offers "other".
func BuildSecondaryLocations(facilities []Facility) []SecondaryLocation {
	out := make([]SecondaryLocation, len(facilities))
	for i, f := range facilities {
		vacation := f.ActivityType == VacationActivity
		out[i] = SecondaryLocation{
			DestinationID:  i,
			LocationID:     fmt.Sprintf("sec_%d", i),
			EnterpriseID:   f.EnterpriseID,
			ActivityType:   f.ActivityType,
			CommuneID:      f.CommuneID,
			X:              f.X,
			Y:              f.Y,
			OffersVacation: vacation,
			OffersOther:    !vacation,
		}
	}
	return out
}
