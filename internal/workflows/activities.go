package workflows

import (
	"context"
	"fmt"
	"log"

	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/ports"
)

// StatusActivities holds the activity implementations for the status watch workflow.
type StatusActivities struct {
	Engine   ports.RoutingEngine
	Recorder ports.StatusRecorder
	Events   ports.EventPublisher
}

// CheckEngineStatus probes the engine with a verbose status request and
// persists the observation.
func (a *StatusActivities) CheckEngineStatus(ctx context.Context) (*domain.EngineStatus, error) {
	status, err := a.Engine.Status(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("engine status: %w", err)
	}

	if a.Recorder != nil {
		// Best-effort: a failed write should not fail the probe.
		if err := a.Recorder.Record(ctx, status); err != nil {
			log.Printf("record engine status: %v", err)
		}
	}

	return status, nil
}

// PublishTilesetAlert broadcasts a tileset or version change.
func (a *StatusActivities) PublishTilesetAlert(ctx context.Context, alert domain.EngineAlert) error {
	if a.Events == nil {
		log.Printf("ALERT (no publisher) → engine %s, tileset %s",
			alert.Version, alert.TilesetLastModified.Format("2006-01-02T15:04:05Z"))
		return nil
	}
	if err := a.Events.PublishEngineAlert(ctx, &alert); err != nil {
		return fmt.Errorf("publish engine alert: %w", err)
	}
	return nil
}
