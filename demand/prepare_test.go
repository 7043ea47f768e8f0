package demand

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
	"github.com/theoremus-urban-solutions/entd-longdistance/internal/testfixtures"
)

func fixturePaths(t *testing.T) Paths {
	files := testfixtures.WriteDemand(t, t.TempDir())
	return Paths{
		Facilities:   files[testfixtures.DemandFacilities],
		Zones:        files[testfixtures.DemandZones],
		Persons:      files[testfixtures.DemandPersons],
		Households:   files[testfixtures.DemandHouseholds],
		Homes:        files[testfixtures.DemandHomes],
		Activities:   files[testfixtures.DemandActivities],
		LocatedTrips: files[testfixtures.DemandLocatedTrips],
		Agents:       files[testfixtures.DemandAgents],
	}
}

func TestLoadInputs(t *testing.T) {
	in, err := LoadInputs(context.Background(), fixturePaths(t))
	require.NoError(t, err)

	assert.Len(t, in.Zones, 3)
	assert.Len(t, in.Persons, 5)
	assert.Len(t, in.Households, 4)
	assert.Len(t, in.Homes, 3)
	assert.Len(t, in.Activities, 5)
	assert.Len(t, in.LocatedTrips, 6)
	assert.Len(t, in.Facilities, 2)
	require.Len(t, in.Agents, 4)

	assert.Equal(t, Agent{AgentID: 2, LAge: 65, LIncome: 13267, Male: false}, in.Agents[2])
	assert.True(t, in.Agents[3].Male)
	assert.Equal(t, Zone{Code: "75", Name: "Paris", Lat: 48.8566, Lng: 2.3522}, in.Zones[0])
}

func TestLoadInputs_SkipsUnsetPaths(t *testing.T) {
	paths := fixturePaths(t)
	paths.Facilities = ""

	in, err := LoadInputs(context.Background(), paths)
	require.NoError(t, err)
	assert.Empty(t, in.Facilities)
}

func TestLoadInputs_MissingFile(t *testing.T) {
	paths := fixturePaths(t)
	paths.Homes = filepath.Join(t.TempDir(), "nope.csv")

	_, err := LoadInputs(context.Background(), paths)

	var missing *entd.MissingFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, paths.Homes, missing.Path)
}

func TestLoadInputs_MissingColumn(t *testing.T) {
	paths := fixturePaths(t)
	testfixtures.WriteFile(t, paths.Zones, "code;name;lat\n75;Paris;48.8\n")

	_, err := LoadInputs(context.Background(), paths)

	var missing *entd.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "lng", missing.Column)
}

func TestPrepare(t *testing.T) {
	paths := fixturePaths(t)
	in, err := LoadInputs(context.Background(), paths)
	require.NoError(t, err)

	out, err := Prepare(context.Background(), in, Options{SamplingRate: 0.5, AgentCount: 4}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, out.UnmatchedPersons)
	assert.Equal(t, ResidenceStats{WithoutAgent: 1, WithoutHome: 1}, out.ResidenceStats)
	assert.Equal(t, ODStats{OutOfScope: 1, Unlocated: 1}, out.ODStats)

	require.Len(t, out.Residence, 12)
	assert.Equal(t, Residence{AgentID: 0, CityID: 0, CityName: "Paris", Size: 2}, out.Residence[8])

	require.Len(t, out.Cities, 3)
	assert.Equal(t, 4.0, out.Cities[0].Population)
	assert.Equal(t, 2.0, out.Cities[1].Population)
	assert.Equal(t, 0.0, out.Cities[2].Population)

	assert.Len(t, out.ActCity, 9)
	assert.Len(t, out.PopActivities, 3)
	assert.Len(t, out.ProbByActivity, 27)
	assert.Len(t, out.Probabilities, 9)
	assert.Len(t, out.SecondaryLocations, 2)

	dir := t.TempDir()
	written, err := WriteOutputs(dir, out, paths.Agents)
	require.NoError(t, err)
	assert.Len(t, written, 9)

	act, err := os.ReadFile(filepath.Join(dir, FileAct))
	require.NoError(t, err)
	assert.Equal(t, "activity_id,activity_name\n0,home\n1,visits\n2,holiday\n", string(act))

	cities, err := os.ReadFile(filepath.Join(dir, FileCities))
	require.NoError(t, err)
	assert.Equal(t, "city_id,code,city_name,lat,lng,country,population", strings.SplitN(string(cities), "\n", 2)[0])
	assert.Contains(t, string(cities), "0,75,Paris,48.8566,2.3522,France,4\n")

	agents, err := os.ReadFile(filepath.Join(dir, FileAgents))
	require.NoError(t, err)
	assert.Equal(t, testfixtures.DemandFiles()[testfixtures.DemandAgents], string(agents))
}

func TestPrepare_NoZones(t *testing.T) {
	_, err := Prepare(context.Background(), &Inputs{}, Options{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoZones)
}

func TestPrepare_Cancelled(t *testing.T) {
	in, err := LoadInputs(context.Background(), fixturePaths(t))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Prepare(ctx, in, Options{}, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}
