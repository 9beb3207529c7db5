package postgres

import (
	"context"

	"github.com/imanolea/wayfinder/internal/core/domain"
)

// TripRepo implements ports.TripRepository.
//
// Trips are deduplicated per (costing, origin, destination) with coordinates
// rounded to 5 digits (about a meter); re-planning the same journey bumps
// request_count instead of inserting a new row.
type TripRepo struct {
	db *DB
}

func NewTripRepo(db *DB) *TripRepo {
	return &TripRepo{db: db}
}

func (r *TripRepo) Insert(ctx context.Context, trip *domain.SavedTrip) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO trips (costing, origin_lat, origin_lon, dest_lat, dest_lon,
		                   distance_km, duration_seconds, encoded_shape)
		VALUES ($1, round($2::numeric, 5), round($3::numeric, 5),
		        round($4::numeric, 5), round($5::numeric, 5), $6, $7, $8)
		ON CONFLICT (costing, origin_lat, origin_lon, dest_lat, dest_lon) DO UPDATE
		SET request_count    = trips.request_count + 1,
		    distance_km      = EXCLUDED.distance_km,
		    duration_seconds = EXCLUDED.duration_seconds,
		    encoded_shape    = EXCLUDED.encoded_shape
		RETURNING id, request_count, created_at
	`, trip.Costing, trip.Origin.Lat, trip.Origin.Lon, trip.Destination.Lat, trip.Destination.Lon,
		trip.DistanceKm, trip.DurationSeconds, trip.EncodedShape,
	).Scan(&trip.ID, &trip.RequestCount, &trip.CreatedAt)
}

func (r *TripRepo) GetByID(ctx context.Context, id string) (*domain.SavedTrip, error) {
	t := &domain.SavedTrip{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, costing, origin_lat, origin_lon, dest_lat, dest_lon,
		       distance_km, duration_seconds, COALESCE(encoded_shape, ''),
		       request_count, created_at
		FROM trips WHERE id = $1
	`, id).Scan(&t.ID, &t.Costing, &t.Origin.Lat, &t.Origin.Lon,
		&t.Destination.Lat, &t.Destination.Lon,
		&t.DistanceKm, &t.DurationSeconds, &t.EncodedShape,
		&t.RequestCount, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TripRepo) List(ctx context.Context, offset, limit int) ([]domain.SavedTrip, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, costing, origin_lat, origin_lon, dest_lat, dest_lon,
		       distance_km, duration_seconds, COALESCE(encoded_shape, ''),
		       request_count, created_at
		FROM trips
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	trips, err := scanTrips(rows)
	return trips, total, err
}

func (r *TripRepo) MostRequested(ctx context.Context, limit int) ([]domain.SavedTrip, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, costing, origin_lat, origin_lon, dest_lat, dest_lon,
		       distance_km, duration_seconds, COALESCE(encoded_shape, ''),
		       request_count, created_at
		FROM trips
		ORDER BY request_count DESC, created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTrips(rows rowScanner) ([]domain.SavedTrip, error) {
	var trips []domain.SavedTrip
	for rows.Next() {
		var t domain.SavedTrip
		if err := rows.Scan(&t.ID, &t.Costing, &t.Origin.Lat, &t.Origin.Lon,
			&t.Destination.Lat, &t.Destination.Lon,
			&t.DistanceKm, &t.DurationSeconds, &t.EncodedShape,
			&t.RequestCount, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}
