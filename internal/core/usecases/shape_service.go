package usecases

import (
	"fmt"

	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/pkg/metrics"
	"github.com/imanolea/wayfinder/internal/pkg/polyline"
)

// ShapeService converts between plain coordinates and the engine's compact
// encoded-polyline form. Pure computation, no I/O.
type ShapeService struct{}

// NewShapeService creates a new ShapeService.
func NewShapeService() *ShapeService {
	return &ShapeService{}
}

func shapePrecision(digits int) (polyline.Precision, error) {
	switch digits {
	case 0:
		return polyline.Default, nil
	case 5:
		return polyline.Precision5, nil
	case 6:
		return polyline.Precision6, nil
	default:
		return 0, fmt.Errorf("%w: shape_digits must be 5 or 6", ErrInvalid)
	}
}

// Decode expands an encoded shape into coordinates. digits selects the
// precision the shape was encoded at; 0 means the engine default (6).
func (s *ShapeService) Decode(encoded string, digits int) (domain.GeoLineString, error) {
	precision, err := shapePrecision(digits)
	if err != nil {
		return domain.GeoLineString{}, err
	}
	pts, err := polyline.Decode(encoded, precision)
	if err != nil {
		metrics.ShapeDecodeErrors.Inc()
		return domain.GeoLineString{}, err
	}
	coords := make([]domain.GeoPoint, len(pts))
	for i, p := range pts {
		coords[i] = domain.GeoPoint{Lat: p.Lat, Lon: p.Lon}
	}
	return domain.GeoLineString{Coordinates: coords}, nil
}

// Encode compacts coordinates into the encoded form at the given precision.
func (s *ShapeService) Encode(line domain.GeoLineString, digits int) (string, error) {
	precision, err := shapePrecision(digits)
	if err != nil {
		return "", err
	}
	pts := make([]polyline.Point, len(line.Coordinates))
	for i, p := range line.Coordinates {
		pts[i] = polyline.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return polyline.Encode(pts, precision)
}
