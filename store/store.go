package store

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/theoremus-urban-solutions/entd-longdistance/converter"
	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// batchSize keeps each INSERT well below the SQLite variable limit.
const batchSize = 200

// Store persists cleaned tables into a SQLite database.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "exec %s", pragma)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("sqlite store ready", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult replaces the stored tables with a cleaning result and records
// the run, all in one transaction.
func (s *Store) SaveResult(ctx context.Context, runID string, result *converter.Result) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+tables[i]); err != nil {
			return errors.Wrapf(err, "clear %s", tables[i])
		}
	}

	if err := insertBatches(ctx, tx, "households", householdColumns, len(result.Households), func(i int) []any {
		return householdValues(result.Households[i])
	}); err != nil {
		return err
	}
	if err := insertBatches(ctx, tx, "persons", personColumns, len(result.Persons), func(i int) []any {
		return personValues(result.Persons[i])
	}); err != nil {
		return err
	}
	if err := insertBatches(ctx, tx, "trips", tripColumns, len(result.Trips), func(i int) []any {
		return tripValues(result.Trips[i])
	}); err != nil {
		return err
	}

	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.ReplaceInto("runs")
	ib.Cols("run_id", "created_at", "households", "persons", "trips", "pruned_vacations")
	ib.Values(runID, time.Now().UTC().Format(time.RFC3339), len(result.Households), len(result.Persons),
		len(result.Trips), result.Diagnostics.PrunedVacations)
	query, args := ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "record run")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	s.logger.Info("stored cleaned tables",
		zap.String("run_id", runID),
		zap.Int("households", len(result.Households)),
		zap.Int("persons", len(result.Persons)),
		zap.Int("trips", len(result.Trips)),
	)
	return nil
}

func insertBatches(ctx context.Context, tx *sqlx.Tx, table string, cols []string, n int, values func(int) []any) error {
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		ib := sqlbuilder.SQLite.NewInsertBuilder()
		ib.InsertInto(table)
		ib.Cols(cols...)
		for i := start; i < end; i++ {
			ib.Values(values(i)...)
		}
		query, args := ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert %s rows %d-%d", table, start, end)
		}
	}
	return nil
}

// nullable maps NaN to NULL.
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

var householdColumns = []string{
	"household_id", "entd_household_id", "household_weight", "household_size",
	"number_of_vehicles", "number_of_bikes", "income_class", "departement_id", "consumption_units",
}

func householdValues(h survey.Household) []any {
	return []any{
		h.HouseholdID, h.ENTDHouseholdID, nullable(h.HouseholdWeight), h.HouseholdSize,
		h.NumberOfVehicles, h.NumberOfBikes, h.IncomeClass, h.DepartementID, h.ConsumptionUnits,
	}
}

var personColumns = []string{
	"person_id", "entd_person_id", "household_id", "person_weight", "trip_weight", "is_kish",
	"age", "sex", "employed", "studies", "has_license", "has_pt_subscription",
	"socioprofessional_class", "number_of_trips", "is_passenger", "departement_id",
}

func personValues(p survey.Person) []any {
	return []any{
		p.PersonID, p.ENTDPersonID, p.HouseholdID, nullable(p.PersonWeight), p.TripWeight, p.IsKish,
		p.Age, string(p.Sex), p.Employed, p.Studies, p.HasLicense, p.HasPTSubscription,
		p.SocioprofessionalClass, p.NumberOfTrips, p.IsPassenger, p.DepartementID,
	}
}

var tripColumns = []string{
	"trip_id", "entd_person_id", "person_id", "household_id", "vacation_id", "trip_weight",
	"is_first_trip", "is_last_trip", "departure_day", "return_day",
	"departure_time", "arrival_time", "trip_duration", "activity_duration", "routed_distance",
	"mode", "preceding_purpose", "following_purpose",
	"origin_departement_id", "destination_departement_id", "vacation_main_purpose", "vacation_main_mode",
}

func tripValues(t survey.Trip) []any {
	return []any{
		t.TripID, t.ENTDPersonID, t.PersonID, t.HouseholdID, t.VacationID, t.TripWeight,
		t.IsFirstTrip, t.IsLastTrip, t.DepartureDay, t.ReturnDay,
		nullable(t.DepartureTime), nullable(t.ArrivalTime), nullable(t.TripDuration),
		nullable(t.ActivityDuration), t.RoutedDistance,
		string(t.Mode), string(t.PrecedingPurpose), string(t.FollowingPurpose),
		t.OriginDepartementID, t.DestinationDepartementID,
		string(t.VacationMainPurpose), string(t.VacationMainMode),
	}
}
