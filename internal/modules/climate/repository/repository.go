package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"log/slog"

	"climate-api/internal/modules/climate/types"
)

//go:embed sql/get-latest-date.sql
var getLatestDateSQL string

//go:embed sql/get-precipitation-since.sql
var getPrecipitationSinceSQL string

//go:embed sql/get-station-ids.sql
var getStationIDsSQL string

//go:embed sql/get-most-active-station.sql
var getMostActiveStationSQL string

//go:embed sql/get-temperature-observations.sql
var getTemperatureObservationsSQL string

//go:embed sql/get-temperature-stats-from.sql
var getTemperatureStatsFromSQL string

//go:embed sql/get-temperature-stats-between.sql
var getTemperatureStatsBetweenSQL string

// ClimateRepository runs the read-only queries behind the API. Date arguments
// are compared as strings against measurement.date and are not validated.
type ClimateRepository interface {
	// LatestDate returns MAX(measurement.date); ok is false when the table is empty.
	LatestDate(ctx context.Context) (date string, ok bool, err error)
	PrecipitationSince(ctx context.Context, since string) ([]types.Precipitation, error)
	StationIDs(ctx context.Context) ([]string, error)
	// MostActiveStation returns the station with the most measurement rows.
	// Equal counts resolve in whatever order the store groups them.
	MostActiveStation(ctx context.Context) (stationID string, ok bool, err error)
	TemperatureObservations(ctx context.Context, stationID string, since string) ([]types.TemperatureObservation, error)
	TemperatureStatsFrom(ctx context.Context, start string) (types.TemperatureStats, error)
	TemperatureStatsBetween(ctx context.Context, start string, end string) (types.TemperatureStats, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) LatestDate(ctx context.Context) (string, bool, error) {
	var latest sql.NullString
	if err := r.db.QueryRowContext(ctx, getLatestDateSQL).Scan(&latest); err != nil {
		return "", false, err
	}
	return latest.String, latest.Valid, nil
}

func (r *repositoryImpl) PrecipitationSince(ctx context.Context, since string) ([]types.Precipitation, error) {
	rows, err := r.db.QueryContext(ctx, getPrecipitationSinceSQL, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close precipitation rows", "error", err)
		}
	}()
	var out []types.Precipitation
	for rows.Next() {
		var (
			rec  types.Precipitation
			prcp sql.NullFloat64
		)
		if err := rows.Scan(&rec.Date, &prcp); err != nil {
			return nil, err
		}
		rec.Prcp = nullableFloat(prcp)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) StationIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, getStationIDsSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close stations rows", "error", err)
		}
	}()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) MostActiveStation(ctx context.Context) (string, bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, getMostActiveStationSQL).Scan(&id)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (r *repositoryImpl) TemperatureObservations(ctx context.Context, stationID string, since string) ([]types.TemperatureObservation, error) {
	rows, err := r.db.QueryContext(ctx, getTemperatureObservationsSQL, stationID, since)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close temperature observation rows", "error", err)
		}
	}()
	var out []types.TemperatureObservation
	for rows.Next() {
		var (
			rec  types.TemperatureObservation
			tobs sql.NullFloat64
		)
		if err := rows.Scan(&rec.Date, &tobs); err != nil {
			return nil, err
		}
		rec.Tobs = nullableFloat(tobs)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) TemperatureStatsFrom(ctx context.Context, start string) (types.TemperatureStats, error) {
	return scanStats(r.db.QueryRowContext(ctx, getTemperatureStatsFromSQL, start))
}

func (r *repositoryImpl) TemperatureStatsBetween(ctx context.Context, start string, end string) (types.TemperatureStats, error) {
	return scanStats(r.db.QueryRowContext(ctx, getTemperatureStatsBetweenSQL, start, end))
}

// scanStats reads a MIN/AVG/MAX row. Aggregates over zero rows are NULL and
// come back as nil fields, not an error.
func scanStats(row *sql.Row) (types.TemperatureStats, error) {
	var lo, avg, hi sql.NullFloat64
	if err := row.Scan(&lo, &avg, &hi); err != nil {
		return types.TemperatureStats{}, err
	}
	return types.TemperatureStats{
		Min: nullableFloat(lo),
		Avg: nullableFloat(avg),
		Max: nullableFloat(hi),
	}, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
