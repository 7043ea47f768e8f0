package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSecondaryLocations(t *testing.T) {
	got := BuildSecondaryLocations([]Facility{
		{EnterpriseID: "E1", ActivityType: "vacation", CommuneID: "75056", X: 1, Y: 2},
		{EnterpriseID: "E2", ActivityType: "other", CommuneID: "69123"},
	})

	assert.Equal(t, []SecondaryLocation{
		{DestinationID: 0, LocationID: "sec_0", EnterpriseID: "E1", ActivityType: "vacation", CommuneID: "75056", X: 1, Y: 2, OffersVacation: true},
		{DestinationID: 1, LocationID: "sec_1", EnterpriseID: "E2", ActivityType: "other", CommuneID: "69123", OffersOther: true},
	}, got)
}
