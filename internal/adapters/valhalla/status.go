package valhalla

import (
	"context"
	"time"

	"github.com/imanolea/wayfinder/internal/core/domain"
)

type statusManifest struct {
	Verbose bool `json:"verbose,omitempty"`
}

type statusResponse struct {
	Version             string   `json:"version"`
	TilesetLastModified int64    `json:"tileset_last_modified"` // unix seconds
	AvailableActions    []string `json:"available_actions"`
	// Verbose block, flattened into the top level by the engine. Only
	// present when verbose output is requested and allowed.
	HasTiles       bool `json:"has_tiles,omitempty"`
	HasAdmins      bool `json:"has_admins,omitempty"`
	HasTimezones   bool `json:"has_timezones,omitempty"`
	HasLiveTraffic bool `json:"has_live_traffic,omitempty"`
}

// Status reports the engine's version, tileset age, and capabilities.
// Verbose output can be disallowed by the engine's service limits, in which
// case the verbose fields just come back unset.
func (c *Client) Status(ctx context.Context, verbose bool) (*domain.EngineStatus, error) {
	var resp statusResponse
	if err := c.post(ctx, "status", statusManifest{Verbose: verbose}, &resp); err != nil {
		return nil, err
	}
	return &domain.EngineStatus{
		Version:             resp.Version,
		TilesetLastModified: time.Unix(resp.TilesetLastModified, 0).UTC(),
		AvailableActions:    resp.AvailableActions,
		HasTiles:            resp.HasTiles,
		HasAdmins:           resp.HasAdmins,
		HasTimezones:        resp.HasTimezones,
		HasLiveTraffic:      resp.HasLiveTraffic,
		ObservedAt:          time.Now().UTC(),
	}, nil
}
