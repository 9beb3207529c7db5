package usecases

import (
	"context"
	"fmt"

	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/ports"
)

// ElevationService samples terrain heights along shapes.
type ElevationService struct {
	engine ports.RoutingEngine
}

// NewElevationService creates a new ElevationService.
func NewElevationService(engine ports.RoutingEngine) *ElevationService {
	return &ElevationService{engine: engine}
}

// Profile resolves an elevation request. A request must carry exactly one of
// a plain shape or an encoded one.
func (s *ElevationService) Profile(ctx context.Context, req domain.ElevationRequest) (*domain.ElevationProfile, error) {
	hasShape := len(req.Shape) > 0
	hasEncoded := req.EncodedShape != ""
	if hasShape == hasEncoded {
		return nil, fmt.Errorf("%w: exactly one of shape and encoded_shape is required", ErrInvalid)
	}
	if req.ShapeDigits != 0 && req.ShapeDigits != 5 && req.ShapeDigits != 6 {
		return nil, fmt.Errorf("%w: shape_digits must be 5 or 6", ErrInvalid)
	}
	return s.engine.Elevation(ctx, req)
}
