package postgres

import (
	"context"

	"github.com/imanolea/wayfinder/internal/core/domain"
)

// StatusRepo implements ports.StatusRecorder, keeping a history of engine
// status observations for the change watcher.
type StatusRepo struct {
	db *DB
}

func NewStatusRepo(db *DB) *StatusRepo {
	return &StatusRepo{db: db}
}

func (r *StatusRepo) Record(ctx context.Context, status *domain.EngineStatus) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO engine_status (version, tileset_last_modified, available_actions,
		                           has_tiles, has_admins, has_timezones, has_live_traffic, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, status.Version, status.TilesetLastModified, status.AvailableActions,
		status.HasTiles, status.HasAdmins, status.HasTimezones, status.HasLiveTraffic,
		status.ObservedAt)
	return err
}

func (r *StatusRepo) Latest(ctx context.Context) (*domain.EngineStatus, error) {
	s := &domain.EngineStatus{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT version, tileset_last_modified, available_actions,
		       has_tiles, has_admins, has_timezones, has_live_traffic, observed_at
		FROM engine_status
		ORDER BY observed_at DESC
		LIMIT 1
	`).Scan(&s.Version, &s.TilesetLastModified, &s.AvailableActions,
		&s.HasTiles, &s.HasAdmins, &s.HasTimezones, &s.HasLiveTraffic, &s.ObservedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
