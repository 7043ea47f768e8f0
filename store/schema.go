package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	households  INTEGER NOT NULL,
	persons     INTEGER NOT NULL,
	trips       INTEGER NOT NULL,
	pruned_vacations INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS households (
	household_id       INTEGER PRIMARY KEY,
	entd_household_id  INTEGER NOT NULL,
	household_weight   REAL,
	household_size     INTEGER NOT NULL,
	number_of_vehicles INTEGER NOT NULL,
	number_of_bikes    INTEGER NOT NULL,
	income_class       INTEGER NOT NULL,
	departement_id     TEXT NOT NULL,
	consumption_units  REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS persons (
	person_id               INTEGER PRIMARY KEY,
	entd_person_id          INTEGER NOT NULL,
	household_id            INTEGER NOT NULL REFERENCES households(household_id),
	person_weight           REAL,
	trip_weight             REAL NOT NULL,
	is_kish                 INTEGER NOT NULL,
	age                     INTEGER NOT NULL,
	sex                     TEXT NOT NULL,
	employed                INTEGER NOT NULL,
	studies                 INTEGER NOT NULL,
	has_license             INTEGER NOT NULL,
	has_pt_subscription     INTEGER NOT NULL,
	socioprofessional_class INTEGER NOT NULL,
	number_of_trips         INTEGER NOT NULL,
	is_passenger            INTEGER NOT NULL,
	departement_id          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trips (
	trip_id                    INTEGER PRIMARY KEY,
	entd_person_id             INTEGER NOT NULL,
	person_id                  INTEGER NOT NULL REFERENCES persons(person_id),
	household_id               INTEGER NOT NULL REFERENCES households(household_id),
	vacation_id                TEXT NOT NULL,
	trip_weight                REAL NOT NULL,
	is_first_trip              INTEGER NOT NULL,
	is_last_trip               INTEGER NOT NULL,
	departure_day              TEXT NOT NULL,
	return_day                 TEXT NOT NULL,
	departure_time             REAL,
	arrival_time               REAL,
	trip_duration              REAL,
	activity_duration          REAL,
	routed_distance            REAL NOT NULL,
	mode                       TEXT NOT NULL,
	preceding_purpose          TEXT NOT NULL,
	following_purpose          TEXT NOT NULL,
	origin_departement_id      TEXT NOT NULL,
	destination_departement_id TEXT NOT NULL,
	vacation_main_purpose      TEXT NOT NULL,
	vacation_main_mode         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trips_vacation ON trips(vacation_id);
CREATE INDEX IF NOT EXISTS idx_persons_household ON persons(household_id);
`

// tables in insertion order; cleared in reverse.
var tables = []string{"households", "persons", "trips"}
