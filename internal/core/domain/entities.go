package domain

import (
	"time"

	"github.com/imanolea/wayfinder/internal/core/costing"
)

// PlanRequest describes a turn-by-turn routing request as it arrives at the
// gateway. Only the model name is validated here; per-model tuning knobs
// pass through to the engine as given.
type PlanRequest struct {
	Locations        []GeoPoint       `json:"locations"`
	Costing          costing.Model    `json:"costing"`
	CostingOptions   *costing.Options `json:"costing_options,omitempty"`
	Units            string           `json:"units,omitempty"`    // "kilometers" or "miles"
	Language         string           `json:"language,omitempty"` // BCP 47 tag
	Alternates       int              `json:"alternates,omitempty"`
	ShapeDigits      int              `json:"shape_digits,omitempty"` // 5 or 6; 0 means engine default (6)
	ExcludeLocations []GeoPoint       `json:"exclude_locations,omitempty"`
	ExcludePolygons  [][]GeoPoint     `json:"exclude_polygons,omitempty"`
}

// RouteSummary aggregates a route or leg.
type RouteSummary struct {
	TimeSeconds float64 `json:"time_seconds"`
	LengthKm    float64 `json:"length_km"`
	HasToll     bool    `json:"has_toll"`
	HasHighway  bool    `json:"has_highway"`
	HasFerry    bool    `json:"has_ferry"`
	Bounds      Bounds  `json:"bounds"`
}

// RouteManeuver is a single turn-by-turn instruction.
type RouteManeuver struct {
	Type            int      `json:"type"`
	Instruction     string   `json:"instruction"`
	VerbalPre       string   `json:"verbal_pre,omitempty"`
	VerbalPost      string   `json:"verbal_post,omitempty"`
	StreetNames     []string `json:"street_names,omitempty"`
	TimeSeconds     float64  `json:"time_seconds"`
	LengthKm        float64  `json:"length_km"`
	BeginShapeIndex int      `json:"begin_shape_index"`
	EndShapeIndex   int      `json:"end_shape_index"`
	TravelMode      string   `json:"travel_mode"`
}

// RouteLeg is the path between two break locations, with its decoded
// geometry and the engine's compact encoded form.
type RouteLeg struct {
	Summary      RouteSummary    `json:"summary"`
	Maneuvers    []RouteManeuver `json:"maneuvers,omitempty"`
	Geometry     GeoLineString   `json:"geometry"`
	EncodedShape string          `json:"encoded_shape"`
}

// PlannedRoute is a fully resolved routing result.
type PlannedRoute struct {
	ID           string        `json:"id,omitempty"`
	Costing      costing.Model `json:"costing"`
	Units        string        `json:"units"`
	Language     string        `json:"language,omitempty"`
	Summary      RouteSummary  `json:"summary"`
	Legs         []RouteLeg    `json:"legs"`
	Warnings     []string      `json:"warnings,omitempty"`
	CrowFliesKm  float64       `json:"crow_flies_km"`
	DetourFactor float64       `json:"detour_factor"` // routed length / crow-flies distance
	CacheHit     bool          `json:"cache_hit"`
}

// MatrixRequest describes a sources-to-targets time-distance request.
type MatrixRequest struct {
	Sources        []GeoPoint       `json:"sources"`
	Targets        []GeoPoint       `json:"targets"`
	Costing        costing.Model    `json:"costing"`
	CostingOptions *costing.Options `json:"costing_options,omitempty"`
}

// MatrixCell is one source-target pairing.
type MatrixCell struct {
	FromIndex   int     `json:"from_index"`
	ToIndex     int     `json:"to_index"`
	TimeSeconds int     `json:"time_seconds"`
	DistanceKm  float64 `json:"distance_km"`
}

// MatrixResult is the row-major time-distance matrix.
type MatrixResult struct {
	Algorithm string         `json:"algorithm"`
	Units     string         `json:"units"`
	Cells     [][]MatrixCell `json:"cells"`
}

// ElevationRequest asks for terrain heights along a shape. Exactly one of
// Shape and EncodedShape must be set; ShapeDigits applies to EncodedShape.
type ElevationRequest struct {
	Shape            []GeoPoint `json:"shape,omitempty"`
	EncodedShape     string     `json:"encoded_shape,omitempty"`
	ShapeDigits      int        `json:"shape_digits,omitempty"`
	Range            bool       `json:"range,omitempty"`
	ResampleDistance float64    `json:"resample_distance,omitempty"`
}

// RangeHeight is a distance-along-shape / height sample. Height is nil where
// the terrain model has no data.
type RangeHeight struct {
	RangeMeters float64  `json:"range_meters"`
	Height      *float64 `json:"height"`
}

// ElevationProfile is the sampled terrain along a shape.
type ElevationProfile struct {
	Shape        []GeoPoint    `json:"shape,omitempty"`
	Heights      []float64     `json:"heights,omitempty"`
	RangeHeights []RangeHeight `json:"range_heights,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// EngineStatus is a health observation of the upstream routing engine.
type EngineStatus struct {
	Version             string    `json:"version"`
	TilesetLastModified time.Time `json:"tileset_last_modified"`
	AvailableActions    []string  `json:"available_actions"`
	HasTiles            bool      `json:"has_tiles,omitempty"`
	HasAdmins           bool      `json:"has_admins,omitempty"`
	HasTimezones        bool      `json:"has_timezones,omitempty"`
	HasLiveTraffic      bool      `json:"has_live_traffic,omitempty"`
	ObservedAt          time.Time `json:"observed_at"`
}

// SavedTrip is a persisted record of a planned route, kept for history and
// cache warming.
type SavedTrip struct {
	ID              string        `json:"id"`
	Costing         costing.Model `json:"costing"`
	Origin          GeoPoint      `json:"origin"`
	Destination     GeoPoint      `json:"destination"`
	DistanceKm      float64       `json:"distance_km"`
	DurationSeconds float64       `json:"duration_seconds"`
	EncodedShape    string        `json:"encoded_shape"` // 6-digit precision
	RequestCount    int           `json:"request_count"`
	CreatedAt       time.Time     `json:"created_at"`
}

// RouteEvent is published after every successful plan.
type RouteEvent struct {
	TripID      string        `json:"trip_id,omitempty"`
	Costing     costing.Model `json:"costing"`
	Origin      GeoPoint      `json:"origin"`
	Destination GeoPoint      `json:"destination"`
	DistanceKm  float64       `json:"distance_km"`
	DurationSec float64       `json:"duration_seconds"`
	CacheHit    bool          `json:"cache_hit"`
	PlannedAt   time.Time     `json:"planned_at"`
}

// EngineAlert is published when the status watcher observes a tileset or
// version change on the upstream engine.
type EngineAlert struct {
	Version             string    `json:"version"`
	TilesetLastModified time.Time `json:"tileset_last_modified"`
	PreviousModified    time.Time `json:"previous_modified,omitempty"`
	ObservedAt          time.Time `json:"observed_at"`
}
