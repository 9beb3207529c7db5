package ports

import (
	"context"

	"github.com/imanolea/wayfinder/internal/core/domain"
)

// TripRepository persists planned-route history.
type TripRepository interface {
	Insert(ctx context.Context, trip *domain.SavedTrip) error
	GetByID(ctx context.Context, id string) (*domain.SavedTrip, error)
	List(ctx context.Context, offset, limit int) ([]domain.SavedTrip, int, error)
	// MostRequested returns the trips with the highest request counts,
	// used by the cache warmer.
	MostRequested(ctx context.Context, limit int) ([]domain.SavedTrip, error)
}

// StatusRecorder persists engine status observations.
type StatusRecorder interface {
	Record(ctx context.Context, status *domain.EngineStatus) error
	Latest(ctx context.Context) (*domain.EngineStatus, error)
}
