package store

import (
	"context"
	"database/sql"
	"math"

	"github.com/huandu/go-sqlbuilder"
	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// tripRow is the scanned form of a stored trip.
type tripRow struct {
	TripID                   int             `db:"trip_id"`
	ENTDPersonID             int64           `db:"entd_person_id"`
	PersonID                 int             `db:"person_id"`
	HouseholdID              int             `db:"household_id"`
	VacationID               string          `db:"vacation_id"`
	TripWeight               float64         `db:"trip_weight"`
	IsFirstTrip              bool            `db:"is_first_trip"`
	IsLastTrip               bool            `db:"is_last_trip"`
	DepartureDay             string          `db:"departure_day"`
	ReturnDay                string          `db:"return_day"`
	DepartureTime            sql.NullFloat64 `db:"departure_time"`
	ArrivalTime              sql.NullFloat64 `db:"arrival_time"`
	TripDuration             sql.NullFloat64 `db:"trip_duration"`
	ActivityDuration         sql.NullFloat64 `db:"activity_duration"`
	RoutedDistance           float64         `db:"routed_distance"`
	Mode                     string          `db:"mode"`
	PrecedingPurpose         string          `db:"preceding_purpose"`
	FollowingPurpose         string          `db:"following_purpose"`
	OriginDepartementID      string          `db:"origin_departement_id"`
	DestinationDepartementID string          `db:"destination_departement_id"`
	VacationMainPurpose      string          `db:"vacation_main_purpose"`
	VacationMainMode         string          `db:"vacation_main_mode"`
}

func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func (r tripRow) trip() survey.Trip {
	return survey.Trip{
		TripID:                   r.TripID,
		ENTDPersonID:             r.ENTDPersonID,
		PersonID:                 r.PersonID,
		HouseholdID:              r.HouseholdID,
		VacationID:               r.VacationID,
		TripWeight:               r.TripWeight,
		IsFirstTrip:              r.IsFirstTrip,
		IsLastTrip:               r.IsLastTrip,
		DepartureDay:             r.DepartureDay,
		ReturnDay:                r.ReturnDay,
		DepartureTime:            orNaN(r.DepartureTime),
		ArrivalTime:              orNaN(r.ArrivalTime),
		TripDuration:             orNaN(r.TripDuration),
		ActivityDuration:         orNaN(r.ActivityDuration),
		RoutedDistance:           r.RoutedDistance,
		Mode:                     survey.Mode(r.Mode),
		PrecedingPurpose:         survey.Purpose(r.PrecedingPurpose),
		FollowingPurpose:         survey.Purpose(r.FollowingPurpose),
		OriginDepartementID:      r.OriginDepartementID,
		DestinationDepartementID: r.DestinationDepartementID,
		VacationMainPurpose:      survey.Purpose(r.VacationMainPurpose),
		VacationMainMode:         survey.Mode(r.VacationMainMode),
	}
}

// Trips returns the stored trips of one vacation, or all trips when
// vacationID is empty, ordered by trip id.
func (s *Store) Trips(ctx context.Context, vacationID string) ([]survey.Trip, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(tripColumns...)
	sb.From("trips")
	if vacationID != "" {
		sb.Where(sb.Equal("vacation_id", vacationID))
	}
	sb.OrderBy("trip_id")
	query, args := sb.Build()

	var rows []tripRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select trips")
	}
	trips := make([]survey.Trip, len(rows))
	for i, r := range rows {
		trips[i] = r.trip()
	}
	return trips, nil
}

// Count returns the number of rows of a stored table.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	known := false
	for _, t := range append([]string{"runs"}, tables...) {
		known = known || t == table
	}
	if !known {
		return 0, errors.Errorf("unknown table %q", table)
	}
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, errors.Wrapf(err, "count %s", table)
	}
	return n, nil
}
