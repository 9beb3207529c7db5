package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/imanolea/wayfinder/internal/core/costing"
	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/ports"
	"github.com/imanolea/wayfinder/internal/pkg/geospatial"
	"github.com/imanolea/wayfinder/internal/pkg/metrics"
)

// RoutingService plans routes through the upstream engine, with a
// read-through cache and trip history on the side.
type RoutingService struct {
	engine   ports.RoutingEngine
	trips    ports.TripRepository
	cache    ports.CacheService
	events   ports.EventPublisher
	cacheTTL int // seconds
}

// NewRoutingService creates a new RoutingService. cacheTTLSeconds <= 0
// disables result caching.
func NewRoutingService(
	engine ports.RoutingEngine,
	trips ports.TripRepository,
	cache ports.CacheService,
	events ports.EventPublisher,
	cacheTTLSeconds int,
) *RoutingService {
	return &RoutingService{
		engine:   engine,
		trips:    trips,
		cache:    cache,
		events:   events,
		cacheTTL: cacheTTLSeconds,
	}
}

// Plan resolves a routing request. Identical requests within the cache TTL
// are served from cache and marked as such.
func (s *RoutingService) Plan(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error) {
	if len(req.Locations) < 2 {
		return nil, fmt.Errorf("%w: at least two locations are required", ErrInvalid)
	}
	if req.Costing == "" {
		req.Costing = costing.Auto
	}
	if !req.Costing.Valid() {
		return nil, fmt.Errorf("%w: unknown costing model %q", ErrInvalid, req.Costing)
	}
	if req.Units == "" {
		req.Units = "kilometers"
	}

	key, err := planCacheKey(req)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
			var route domain.PlannedRoute
			if err := json.Unmarshal(cached, &route); err == nil {
				metrics.CacheHits.WithLabelValues("route").Inc()
				route.CacheHit = true
				return &route, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("route").Inc()
	}

	route, err := s.engine.Route(ctx, req)
	if err != nil {
		return nil, err
	}

	origin := req.Locations[0]
	dest := req.Locations[len(req.Locations)-1]
	route.CrowFliesKm = geospatial.HaversineKm(origin.Lat, origin.Lon, dest.Lat, dest.Lon)
	if route.CrowFliesKm > 0 {
		route.DetourFactor = route.Summary.LengthKm / route.CrowFliesKm
	}

	trip := &domain.SavedTrip{
		Costing:         req.Costing,
		Origin:          origin,
		Destination:     dest,
		DistanceKm:      route.Summary.LengthKm,
		DurationSeconds: route.Summary.TimeSeconds,
		CreatedAt:       time.Now().UTC(),
	}
	if len(route.Legs) == 1 {
		trip.EncodedShape = route.Legs[0].EncodedShape
	}
	if err := s.trips.Insert(ctx, trip); err == nil {
		route.ID = trip.ID
	}

	// Best effort: a broker outage must not fail the plan.
	_ = s.events.PublishRoutePlanned(ctx, &domain.RouteEvent{
		TripID:      trip.ID,
		Costing:     req.Costing,
		Origin:      origin,
		Destination: dest,
		DistanceKm:  route.Summary.LengthKm,
		DurationSec: route.Summary.TimeSeconds,
		PlannedAt:   time.Now().UTC(),
	})
	metrics.RoutesPlanned.WithLabelValues(string(req.Costing)).Inc()

	if s.cacheTTL > 0 {
		if data, err := json.Marshal(route); err == nil {
			_ = s.cache.Set(ctx, key, data, s.cacheTTL)
		}
	}
	return route, nil
}

// planCacheKey derives a stable cache key from the full request. Any field
// that changes the engine's answer participates in the hash.
func planCacheKey(req domain.PlanRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("hash plan request: %w", err)
	}
	sum := sha256.Sum256(data)
	return "route:" + hex.EncodeToString(sum[:16]), nil
}
