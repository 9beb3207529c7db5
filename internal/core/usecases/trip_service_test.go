package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/usecases"
)

func TestTripService_GetByIDRequiresID(t *testing.T) {
	svc := usecases.NewTripService(&mockTripRepo{})

	_, err := svc.GetByID(context.Background(), "")
	if !errors.Is(err, usecases.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestTripService_ListClampsPaging(t *testing.T) {
	var gotOffset, gotLimit int
	repo := &mockTripRepo{
		listFn: func(ctx context.Context, offset, limit int) ([]domain.SavedTrip, int, error) {
			gotOffset, gotLimit = offset, limit
			return nil, 0, nil
		},
	}
	svc := usecases.NewTripService(repo)

	if _, _, err := svc.List(context.Background(), -5, 1000); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotOffset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", gotOffset)
	}
	if gotLimit != 20 {
		t.Errorf("expected limit clamped to 20, got %d", gotLimit)
	}
}

func TestTripService_MostRequestedClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockTripRepo{
		mostRequestedFn: func(ctx context.Context, limit int) ([]domain.SavedTrip, error) {
			gotLimit = limit
			return []domain.SavedTrip{{ID: "trip-1"}}, nil
		},
	}
	svc := usecases.NewTripService(repo)

	trips, err := svc.MostRequested(context.Background(), 0)
	if err != nil {
		t.Fatalf("most requested: %v", err)
	}
	if gotLimit != 10 {
		t.Errorf("expected default limit 10, got %d", gotLimit)
	}
	if len(trips) != 1 {
		t.Errorf("expected 1 trip, got %d", len(trips))
	}
}
