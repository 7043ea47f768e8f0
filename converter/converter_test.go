package converter

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
	"github.com/theoremus-urban-solutions/entd-longdistance/internal/testfixtures"
	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// extractFromFiles parses fixture contents without touching the disk.
func extractFromFiles(t *testing.T, files map[string]string) *entd.Extract {
	t.Helper()
	tables := map[string]*entd.Table{}
	for _, s := range entd.Schemas {
		tbl, err := entd.ReadTable(strings.NewReader(files[s.Name]), s)
		require.NoError(t, err, s.Name)
		tables[s.Name] = tbl
	}
	return &entd.Extract{
		Individu:    tables[entd.FileIndividu],
		TCMIndividu: tables[entd.FileTCMIndividu],
		Menage:      tables[entd.FileMenage],
		TCMMenage:   tables[entd.FileTCMMenage],
		Deploc:      tables[entd.FileDeploc],
		Voyage:      tables[entd.FileVoyage],
		VoyageDet:   tables[entd.FileVoyageDet],
	}
}

func cleanDefault(t *testing.T, opts Options) *Result {
	t.Helper()
	raw := extractFromFiles(t, testfixtures.ENTDFiles())
	result, err := NewCleaner(opts, zap.NewNop()).Clean(context.Background(), raw)
	require.NoError(t, err)
	return result
}

func tripsOf(trips []survey.Trip, vacation string) []survey.Trip {
	var out []survey.Trip
	for _, t := range trips {
		if t.VacationID == vacation {
			out = append(out, t)
		}
	}
	return out
}

func TestClean_Households(t *testing.T) {
	result := cleanDefault(t, Options{ChainWorkers: 2})

	require.Len(t, result.Households, 2)
	couple := result.Households[0]
	assert.Equal(t, 0, couple.HouseholdID)
	assert.Equal(t, int64(100), couple.ENTDHouseholdID)
	assert.Equal(t, 1200.5, couple.HouseholdWeight)
	assert.Equal(t, 2, couple.HouseholdSize)
	assert.Equal(t, 2, couple.NumberOfVehicles)
	assert.Equal(t, 2, couple.NumberOfBikes)
	assert.Equal(t, 4, couple.IncomeClass)
	assert.Equal(t, "75", couple.DepartementID)
	assert.InDelta(t, 1.3, couple.ConsumptionUnits, 1e-9)

	senior := result.Households[1]
	assert.Equal(t, 0, senior.IncomeClass)
	assert.Equal(t, 1, senior.NumberOfVehicles)
	assert.Equal(t, survey.UndefinedDepartement, senior.DepartementID)
	assert.Equal(t, 1.0, senior.ConsumptionUnits)

	assert.Equal(t, 1, result.Diagnostics.HouseholdSizeMismatches)
	assert.Equal(t, 1, result.Diagnostics.Warnings[WarningHouseholdSize])
}

func TestClean_Persons(t *testing.T) {
	result := cleanDefault(t, Options{})

	require.Len(t, result.Persons, 3)
	assert.Equal(t, 1, result.Diagnostics.PersonsWithoutHousehold)

	adult, child, senior := result.Persons[0], result.Persons[1], result.Persons[2]

	assert.Equal(t, int64(10001), adult.ENTDPersonID)
	assert.Equal(t, 0, adult.HouseholdID)
	assert.Equal(t, survey.SexMale, adult.Sex)
	assert.True(t, adult.Employed)
	assert.False(t, adult.Studies)
	assert.True(t, adult.HasLicense)
	assert.False(t, adult.HasPTSubscription)
	assert.Equal(t, 4, adult.SocioprofessionalClass)
	assert.True(t, adult.IsKish)
	assert.Equal(t, 1.5, adult.TripWeight)
	assert.Equal(t, 2, adult.NumberOfTrips)
	assert.False(t, adult.IsPassenger)

	assert.Equal(t, survey.SexFemale, child.Sex)
	assert.True(t, child.Studies)
	assert.True(t, child.HasPTSubscription)
	assert.Equal(t, 8, child.SocioprofessionalClass)
	assert.True(t, child.IsPassenger)
	assert.Equal(t, 0.8, child.TripWeight)

	// counted before pruning removed V2
	assert.Equal(t, 1, senior.HouseholdID)
	assert.True(t, senior.HasLicense)
	assert.Equal(t, 1, senior.NumberOfTrips)
	assert.Equal(t, "69", senior.DepartementID)
}

func TestClean_TwoTripVacation(t *testing.T) {
	result := cleanDefault(t, Options{})

	v1 := tripsOf(result.Trips, testfixtures.VacationRoundTrip)
	require.Len(t, v1, 2)
	out, back := v1[0], v1[1]

	assert.True(t, out.IsFirstTrip)
	assert.False(t, out.IsLastTrip)
	assert.Equal(t, survey.PurposeHome, out.PrecedingPurpose)
	assert.Equal(t, survey.PurposeHoliday, out.FollowingPurpose)
	assert.Equal(t, 8*3600.0, out.DepartureTime)
	assert.Equal(t, 12*3600.0, out.ArrivalTime)
	assert.Equal(t, 4*3600.0, out.TripDuration)
	assert.Equal(t, back.DepartureTime-out.ArrivalTime, out.ActivityDuration)
	assert.Equal(t, 450500.0, out.RoutedDistance)
	assert.Equal(t, survey.ModeCar, out.Mode)

	assert.True(t, back.IsLastTrip)
	assert.Equal(t, out.FollowingPurpose, back.PrecedingPurpose)
	assert.Equal(t, survey.PurposeHome, back.FollowingPurpose)
	assert.Equal(t, 2*86400.0+10*3600, back.DepartureTime)
	assert.True(t, math.IsNaN(back.ActivityDuration))

	assert.Equal(t, "05/06/2008", out.DepartureDay)
	assert.Equal(t, "07/06/2008", out.ReturnDay)
	assert.Equal(t, "75", out.OriginDepartementID)
	assert.Equal(t, "69", out.DestinationDepartementID)
	assert.Equal(t, survey.PurposeHoliday, out.VacationMainPurpose)
	assert.Equal(t, survey.ModeCar, out.VacationMainMode)
}

func TestClean_PastMidnightArrival(t *testing.T) {
	result := cleanDefault(t, Options{})

	v3 := tripsOf(result.Trips, testfixtures.VacationNight)
	require.Len(t, v3, 1)
	assert.Equal(t, 23*3600.0, v3[0].DepartureTime)
	assert.Equal(t, 86400.0+3600+600, v3[0].ArrivalTime)
	assert.Equal(t, survey.ModeCarPassenger, v3[0].Mode)
	assert.Equal(t, survey.PurposeVisits, v3[0].FollowingPurpose)
	assert.True(t, v3[0].IsFirstTrip)
	assert.True(t, v3[0].IsLastTrip)
}

func TestClean_PrunesCorruptVacation(t *testing.T) {
	result := cleanDefault(t, Options{})

	assert.Empty(t, tripsOf(result.Trips, testfixtures.VacationCorrupt))
	assert.Empty(t, tripsOf(result.Trips, testfixtures.VacationOrphan))
	assert.Equal(t, 1, result.Diagnostics.PrunedVacations)
	assert.Equal(t, 1, result.Diagnostics.PrunedTrips)
	assert.Equal(t, 1, result.Diagnostics.TripsWithoutPerson)
	assert.Equal(t, 5, result.Diagnostics.TripRows)
}

func TestClean_DenseUniqueIDs(t *testing.T) {
	result := cleanDefault(t, Options{ChainWorkers: 4})

	for i, h := range result.Households {
		assert.Equal(t, i, h.HouseholdID)
	}
	for i, p := range result.Persons {
		assert.Equal(t, i, p.PersonID)
		assert.Less(t, p.HouseholdID, len(result.Households))
	}
	for i, tr := range result.Trips {
		assert.Equal(t, i, tr.TripID)
	}
}

func TestClean_ChainFlagsAndPurposes(t *testing.T) {
	result := cleanDefault(t, Options{ChainWorkers: 3})

	firsts := map[string]int{}
	lasts := map[string]int{}
	for _, tr := range result.Trips {
		if tr.IsFirstTrip {
			firsts[tr.VacationID]++
			assert.Equal(t, survey.PurposeHome, tr.PrecedingPurpose)
		}
		if tr.IsLastTrip {
			lasts[tr.VacationID]++
		}
	}
	for _, tr := range result.Trips {
		assert.Equal(t, 1, firsts[tr.VacationID], tr.VacationID)
		assert.Equal(t, 1, lasts[tr.VacationID], tr.VacationID)
	}
}

func TestClean_NonKishPersonsHaveNoTrips(t *testing.T) {
	files := testfixtures.ENTDFiles()
	files[entd.FileTCMIndividu] += "52;2;10003;100;1100;33;1;75;1;x\n"
	raw := extractFromFiles(t, files)

	result, err := NewCleaner(Options{}, nil).Clean(context.Background(), raw)
	require.NoError(t, err)

	withTrips := map[int]bool{}
	for _, tr := range result.Trips {
		withTrips[tr.PersonID] = true
	}
	var found bool
	for _, p := range result.Persons {
		if !p.IsKish {
			found = true
			assert.Equal(t, 0.0, p.TripWeight)
			assert.Equal(t, -1, p.NumberOfTrips)
			assert.False(t, withTrips[p.PersonID])
		}
	}
	assert.True(t, found)
}

func TestClean_StrictForeignKeys(t *testing.T) {
	raw := extractFromFiles(t, testfixtures.ENTDFiles())

	_, err := NewCleaner(Options{StrictForeignKeys: true}, nil).Clean(context.Background(), raw)
	var fk *ForeignKeyError
	require.True(t, errors.As(err, &fk))
	assert.Equal(t, "person->household", fk.Relation)
	assert.Equal(t, 1, fk.Count)
	assert.Equal(t, []string{testfixtures.PersonOrphan}, fk.Examples)
}

func TestClean_StrictForeignKeysOnTrips(t *testing.T) {
	files := testfixtures.ENTDFiles()
	lines := strings.Split(strings.TrimSpace(files[entd.FileTCMIndividu]), "\n")
	files[entd.FileTCMIndividu] = strings.Join(lines[:len(lines)-1], "\n") + "\n"
	raw := extractFromFiles(t, files)

	_, err := NewCleaner(Options{StrictForeignKeys: true}, nil).Clean(context.Background(), raw)
	var fk *ForeignKeyError
	require.True(t, errors.As(err, &fk))
	assert.Equal(t, "trip->person", fk.Relation)
}

func TestClean_InputNotModified(t *testing.T) {
	raw := extractFromFiles(t, testfixtures.ENTDFiles())
	before := make([][]string, len(raw.VoyageDet.Rows))
	for i, row := range raw.VoyageDet.Rows {
		before[i] = append([]string(nil), row...)
	}

	_, err := NewCleaner(Options{}, nil).Clean(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, before, raw.VoyageDet.Rows)
}

func TestClean_CancelledContext(t *testing.T) {
	raw := extractFromFiles(t, testfixtures.ENTDFiles())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCleaner(Options{}, nil).Clean(ctx, raw)
	assert.ErrorIs(t, err, context.Canceled)
}
