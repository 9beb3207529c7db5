package valhalla

import (
	"context"
	"fmt"

	"github.com/imanolea/wayfinder/internal/core/costing"
	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/pkg/metrics"
	"github.com/imanolea/wayfinder/internal/pkg/polyline"
)

type routeManifest struct {
	Costing          costing.Model    `json:"costing"`
	CostingOptions   *costing.Options `json:"costing_options,omitempty"`
	Locations        []location       `json:"locations"`
	Units            string           `json:"units,omitempty"`
	Language         string           `json:"language,omitempty"`
	Alternates       int              `json:"alternates,omitempty"`
	ExcludeLocations []location       `json:"exclude_locations,omitempty"`
	ExcludePolygons  [][][2]float64   `json:"exclude_polygons,omitempty"`
}

type routeResponse struct {
	Trip wireTrip `json:"trip"`
}

type wireTrip struct {
	Status        int         `json:"status"`
	StatusMessage string      `json:"status_message"`
	Units         string      `json:"units"`
	Language      string      `json:"language"`
	Warnings      []string    `json:"warnings,omitempty"`
	ID            string      `json:"id,omitempty"`
	Legs          []wireLeg   `json:"legs"`
	Summary       wireSummary `json:"summary"`
}

type wireSummary struct {
	Time       float64 `json:"time"`
	Length     float64 `json:"length"`
	HasToll    bool    `json:"has_toll"`
	HasHighway bool    `json:"has_highway"`
	HasFerry   bool    `json:"has_ferry"`
	MinLat     float64 `json:"min_lat"`
	MinLon     float64 `json:"min_lon"`
	MaxLat     float64 `json:"max_lat"`
	MaxLon     float64 `json:"max_lon"`
}

type wireLeg struct {
	Summary   wireSummary    `json:"summary"`
	Maneuvers []wireManeuver `json:"maneuvers"`
	Shape     string         `json:"shape"`
}

type wireManeuver struct {
	Type            int      `json:"type"`
	Instruction     string   `json:"instruction"`
	VerbalPre       string   `json:"verbal_pre_transition_instruction,omitempty"`
	VerbalPost      string   `json:"verbal_post_transition_instruction,omitempty"`
	StreetNames     []string `json:"street_names,omitempty"`
	Time            float64  `json:"time"`
	Length          float64  `json:"length"`
	BeginShapeIndex int      `json:"begin_shape_index"`
	EndShapeIndex   int      `json:"end_shape_index"`
	TravelMode      string   `json:"travel_mode"`
}

// Route plans a turn-by-turn route. Leg shapes come back from the engine as
// 6-digit encoded polylines; they are decoded here so callers get plain
// coordinates alongside the compact form.
func (c *Client) Route(ctx context.Context, req domain.PlanRequest) (*domain.PlannedRoute, error) {
	manifest := routeManifest{
		Costing:        req.Costing,
		CostingOptions: req.CostingOptions,
		Locations:      toLocations(req.Locations),
		Units:          req.Units,
		Language:       req.Language,
		Alternates:     req.Alternates,
	}
	if len(req.ExcludeLocations) > 0 {
		manifest.ExcludeLocations = toLocations(req.ExcludeLocations)
	}
	for _, ring := range req.ExcludePolygons {
		poly := make([][2]float64, len(ring))
		for i, p := range ring {
			poly[i] = [2]float64{p.Lon, p.Lat}
		}
		manifest.ExcludePolygons = append(manifest.ExcludePolygons, poly)
	}

	var resp routeResponse
	if err := c.post(ctx, "route", manifest, &resp); err != nil {
		return nil, err
	}
	return tripToRoute(req.Costing, resp.Trip)
}

func tripToRoute(model costing.Model, trip wireTrip) (*domain.PlannedRoute, error) {
	route := &domain.PlannedRoute{
		ID:       trip.ID,
		Costing:  model,
		Units:    trip.Units,
		Language: trip.Language,
		Summary:  toSummary(trip.Summary),
		Warnings: trip.Warnings,
		Legs:     make([]domain.RouteLeg, 0, len(trip.Legs)),
	}
	for i, leg := range trip.Legs {
		pts, err := polyline.Decode(leg.Shape, polyline.Precision6)
		if err != nil {
			metrics.ShapeDecodeErrors.Inc()
			return nil, fmt.Errorf("leg %d shape: %w", i, err)
		}
		coords := make([]domain.GeoPoint, len(pts))
		for j, p := range pts {
			coords[j] = domain.GeoPoint{Lat: p.Lat, Lon: p.Lon}
		}
		maneuvers := make([]domain.RouteManeuver, len(leg.Maneuvers))
		for j, m := range leg.Maneuvers {
			maneuvers[j] = domain.RouteManeuver{
				Type:            m.Type,
				Instruction:     m.Instruction,
				VerbalPre:       m.VerbalPre,
				VerbalPost:      m.VerbalPost,
				StreetNames:     m.StreetNames,
				TimeSeconds:     m.Time,
				LengthKm:        m.Length,
				BeginShapeIndex: m.BeginShapeIndex,
				EndShapeIndex:   m.EndShapeIndex,
				TravelMode:      m.TravelMode,
			}
		}
		route.Legs = append(route.Legs, domain.RouteLeg{
			Summary:      toSummary(leg.Summary),
			Maneuvers:    maneuvers,
			Geometry:     domain.GeoLineString{Coordinates: coords},
			EncodedShape: leg.Shape,
		})
	}
	return route, nil
}

func toSummary(s wireSummary) domain.RouteSummary {
	return domain.RouteSummary{
		TimeSeconds: s.Time,
		LengthKm:    s.Length,
		HasToll:     s.HasToll,
		HasHighway:  s.HasHighway,
		HasFerry:    s.HasFerry,
		Bounds: domain.Bounds{
			MinLat: s.MinLat, MinLon: s.MinLon,
			MaxLat: s.MaxLat, MaxLon: s.MaxLon,
		},
	}
}

func toLocations(points []domain.GeoPoint) []location {
	out := make([]location, len(points))
	for i, p := range points {
		out[i] = location{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}
