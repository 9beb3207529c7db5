package usecases

import (
	"context"
	"fmt"

	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/ports"
)

// TripService exposes the planned-trip history.
type TripService struct {
	trips ports.TripRepository
}

// NewTripService creates a new TripService.
func NewTripService(trips ports.TripRepository) *TripService {
	return &TripService{trips: trips}
}

// GetByID returns a saved trip by its UUID.
func (s *TripService) GetByID(ctx context.Context, id string) (*domain.SavedTrip, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: trip ID is required", ErrInvalid)
	}
	return s.trips.GetByID(ctx, id)
}

// List returns a page of saved trips, newest first, and the total count.
func (s *TripService) List(ctx context.Context, offset, limit int) ([]domain.SavedTrip, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.trips.List(ctx, offset, limit)
}

// MostRequested returns the trips planned most often, used by the cache
// warmer to keep popular routes hot.
func (s *TripService) MostRequested(ctx context.Context, limit int) ([]domain.SavedTrip, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.trips.MostRequested(ctx, limit)
}
