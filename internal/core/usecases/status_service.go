package usecases

import (
	"context"
	"encoding/json"

	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/ports"
)

const statusCacheKey = "engine:status"

// StatusService reports upstream engine health, shielding the engine from
// status stampedes with a short-lived cache.
type StatusService struct {
	engine   ports.RoutingEngine
	recorder ports.StatusRecorder
	cache    ports.CacheService
	cacheTTL int // seconds
}

// NewStatusService creates a new StatusService.
func NewStatusService(
	engine ports.RoutingEngine,
	recorder ports.StatusRecorder,
	cache ports.CacheService,
	cacheTTLSeconds int,
) *StatusService {
	return &StatusService{
		engine:   engine,
		recorder: recorder,
		cache:    cache,
		cacheTTL: cacheTTLSeconds,
	}
}

// Current returns the engine's status. Non-verbose requests within the TTL
// are served from cache; verbose ones always hit the engine since verbose
// output may be disallowed there and cheap answers would mask that.
func (s *StatusService) Current(ctx context.Context, verbose bool) (*domain.EngineStatus, error) {
	if !verbose && s.cacheTTL > 0 {
		if cached, err := s.cache.Get(ctx, statusCacheKey); err == nil && cached != nil {
			var status domain.EngineStatus
			if err := json.Unmarshal(cached, &status); err == nil {
				return &status, nil
			}
		}
	}

	status, err := s.engine.Status(ctx, verbose)
	if err != nil {
		return nil, err
	}

	// History feeds the change watcher; best effort.
	_ = s.recorder.Record(ctx, status)

	if !verbose && s.cacheTTL > 0 {
		if data, err := json.Marshal(status); err == nil {
			_ = s.cache.Set(ctx, statusCacheKey, data, s.cacheTTL)
		}
	}
	return status, nil
}

// LastRecorded returns the most recent persisted observation without
// touching the engine.
func (s *StatusService) LastRecorded(ctx context.Context) (*domain.EngineStatus, error) {
	return s.recorder.Latest(ctx)
}
