package valhalla

import (
	"context"
	"encoding/json"

	"github.com/imanolea/wayfinder/internal/core/domain"
)

type elevationManifest struct {
	Shape            []location `json:"shape,omitempty"`
	EncodedPolyline  string     `json:"encoded_polyline,omitempty"`
	ShapeFormat      string     `json:"shape_format,omitempty"` // "polyline5" or "polyline6"
	Range            bool       `json:"range,omitempty"`
	ResampleDistance float64    `json:"resample_distance,omitempty"`
}

type elevationResponse struct {
	Shape []location `json:"shape,omitempty"`
	// With range output each entry is a [distance, height] pair where
	// height is null over holes in the terrain model.
	RangeHeight [][2]*float64     `json:"range_height,omitempty"`
	Height      []float64         `json:"height,omitempty"`
	Warnings    []json.RawMessage `json:"warnings,omitempty"`
}

// Elevation samples terrain heights along a shape. The shape goes up either
// as plain coordinates or as an encoded polyline, whichever the request
// carries; ShapeDigits selects the encoded precision (default 6).
func (c *Client) Elevation(ctx context.Context, req domain.ElevationRequest) (*domain.ElevationProfile, error) {
	manifest := elevationManifest{
		Range:            req.Range,
		ResampleDistance: req.ResampleDistance,
	}
	if req.EncodedShape != "" {
		manifest.EncodedPolyline = req.EncodedShape
		manifest.ShapeFormat = "polyline6"
		if req.ShapeDigits == 5 {
			manifest.ShapeFormat = "polyline5"
		}
	} else {
		manifest.Shape = toLocations(req.Shape)
	}

	var resp elevationResponse
	if err := c.post(ctx, "height", manifest, &resp); err != nil {
		return nil, err
	}

	profile := &domain.ElevationProfile{
		Heights: resp.Height,
	}
	for _, p := range resp.Shape {
		profile.Shape = append(profile.Shape, domain.GeoPoint{Lat: p.Lat, Lon: p.Lon})
	}
	for _, pair := range resp.RangeHeight {
		rh := domain.RangeHeight{Height: pair[1]}
		if pair[0] != nil {
			rh.RangeMeters = *pair[0]
		}
		profile.RangeHeights = append(profile.RangeHeights, rh)
	}
	for _, w := range resp.Warnings {
		profile.Warnings = append(profile.Warnings, string(w))
	}
	return profile, nil
}
