package testfixtures

import (
	"path/filepath"
	"testing"
)

// Demand input file names written by WriteDemand.
const (
	DemandFacilities   = "facilities.csv"
	DemandZones        = "zones.csv"
	DemandPersons      = "persons.csv"
	DemandHouseholds   = "households.csv"
	DemandHomes        = "homes.csv"
	DemandActivities   = "activities.csv"
	DemandLocatedTrips = "located_trips.csv"
	DemandAgents       = "agents.csv"
)

// DemandFiles returns a three-city demand scenario keyed by file name.
//
// Cities are Paris (id 0, code 75), Lyon (1, 69) and Marseille (2, 13).
// Persons 1 and 2 live in Paris, 3 in Lyon, 4 in Marseille without an
// agent class, and 5 has no home.
func DemandFiles() map[string]string {
	return map[string]string{
		DemandZones: lines(
			"code;name;lat;lng",
			"75;Paris;48.8566;2.3522",
			"69;Lyon;45.764;4.8357",
			"13;Marseille;43.2965;5.3698",
		),
		DemandPersons: lines(
			"person_id;household_id;age;sex",
			"1;1;30;male",
			"2;1;10;female",
			"3;2;70;female",
			"4;3;-1;male",
			"5;4;40;male",
		),
		DemandHouseholds: lines(
			"household_id;income",
			"1;9000",
			"2;30000",
			"3;9000",
			"4;9000",
		),
		DemandHomes: lines(
			"household_id;lat;lng",
			"1;48.86;2.35",
			"2;45.76;4.83",
			"3;43.3;5.37",
		),
		DemandActivities: lines(
			"person_id;activity_index;purpose;start_time;end_time",
			"1;0;home;;28800",
			"1;1;holiday;36000;72000",
			"1;2;home;79200;",
			"2;0;home;0;3600",
			"3;0;shop;0;100",
		),
		DemandLocatedTrips: lines(
			"person_id;trip_index;preceding_purpose;following_purpose;origin_lat;origin_lng;destination_lat;destination_lng",
			"1;0;home;holiday;48.85;2.35;43.3;5.37",
			"1;1;holiday;home;43.3;5.37;48.85;2.35",
			"2;0;home;holiday;48.85;2.35;45.76;4.83",
			"3;0;home;visits;48.85;2.35;43.3;5.37",
			"3;1;visits;shop;43.3;5.37;43.29;5.38",
			"4;0;home;holiday;;;;",
		),
		DemandAgents: lines(
			"agent_id,l_age,l_income,gender",
			"0,25,8924,1",
			"1,0,8924,0",
			"2,65,13267,False",
			"3,45,0,True",
		),
		DemandFacilities: lines(
			"enterprise_id;activity_type;commune_id;x;y",
			"E1;vacation;75056;652000;6862000",
			"E2;other;69123;842000;6519000",
		),
	}
}

// WriteDemand writes DemandFiles into dir and returns the path of each
// file keyed by name.
func WriteDemand(t testing.TB, dir string) map[string]string {
	t.Helper()
	paths := make(map[string]string)
	for name, content := range DemandFiles() {
		path := filepath.Join(dir, name)
		WriteFile(t, path, content)
		paths[name] = path
	}
	return paths
}
