package formatter

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/entd-longdistance/converter"
	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

func sampleTrip() survey.Trip {
	return survey.Trip{
		TripID: 3, ENTDPersonID: 10001, PersonID: 0, HouseholdID: 0, VacationID: "V1",
		TripWeight: 1.5, IsLastTrip: true,
		DepartureDay: "05/06/2008", ReturnDay: "07/06/2008",
		DepartureTime: 208800, ArrivalTime: 225000, TripDuration: 16200,
		ActivityDuration: math.NaN(), RoutedDistance: 460000,
		Mode: survey.ModeCar, PrecedingPurpose: survey.PurposeHoliday, FollowingPurpose: survey.PurposeHome,
		OriginDepartementID: "75", DestinationDepartementID: "69",
		VacationMainPurpose: survey.PurposeHoliday, VacationMainMode: survey.ModeCar,
	}
}

func TestWriteTrips_FixedColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrips(&buf, []survey.Trip{sampleTrip()}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(TripColumns, ","), lines[0])
	assert.Equal(t,
		"10001,0,0,V1,1.5,3,false,true,05/06/2008,07/06/2008,208800,225000,16200,,460000,car,holiday,home,75,69,holiday,car",
		lines[1])
}

func TestWriteHouseholdsAndPersons(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHouseholds(&buf, []survey.Household{{
		HouseholdID: 0, ENTDHouseholdID: 100, HouseholdWeight: 1200.5, HouseholdSize: 2,
		NumberOfVehicles: 2, NumberOfBikes: 1, IncomeClass: 4, DepartementID: "75", ConsumptionUnits: 1.3,
	}}))
	assert.Equal(t, strings.Join(HouseholdColumns, ";")+"\n0;100;1200.5;2;2;1;4;75;1.3\n", buf.String())

	buf.Reset()
	require.NoError(t, WritePersons(&buf, []survey.Person{{
		PersonID: 1, ENTDPersonID: 10002, Age: 10, Sex: survey.SexFemale, IsKish: true, TripWeight: 0.8,
		Studies: true, SocioprofessionalClass: 8, NumberOfTrips: 1, IsPassenger: true, DepartementID: "75",
	}}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "1;10002;0;0;0.8;true;10;female;false;true;false;false;8;1;true;75", lines[1])
}

func TestWriteSummary(t *testing.T) {
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	result := &converter.Result{
		Trips:       []survey.Trip{sampleTrip()},
		Diagnostics: converter.Diagnostics{PrunedVacations: 2, Warnings: map[string]int{"corrupt_vacation": 2}},
	}
	s := NewSummary("run-1", started, []entd.FileInfo{{Name: entd.FileVoyage, Size: 42}}, result)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, 1.0, decoded["trips"])
	diag := decoded["diagnostics"].(map[string]any)
	assert.Equal(t, 2.0, diag["pruned_vacations"])
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		return WriteRecords(w, ',', []string{"a", "b"}, [][]string{{"1", "2"}})
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}
