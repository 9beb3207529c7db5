package ports

import (
	"context"

	"github.com/imanolea/wayfinder/internal/core/domain"
)

// RoutingEngine is the upstream routing engine the gateway fronts.
type RoutingEngine interface {
	Route(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error)
	Matrix(ctx context.Context, req domain.MatrixRequest) (*domain.MatrixResult, error)
	Elevation(ctx context.Context, req domain.ElevationRequest) (*domain.ElevationProfile, error)
	Status(ctx context.Context, verbose bool) (*domain.EngineStatus, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRoutePlanned(ctx context.Context, ev *domain.RouteEvent) error
	PublishEngineAlert(ctx context.Context, alert *domain.EngineAlert) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
