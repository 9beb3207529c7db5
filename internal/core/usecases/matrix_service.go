package usecases

import (
	"context"
	"fmt"

	"github.com/imanolea/wayfinder/internal/core/costing"
	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/ports"
)

// Matrix requests are bounded to keep a single call from monopolizing the
// engine; larger jobs should be split by the caller.
const maxMatrixLocations = 50

// MatrixService computes time-distance matrices.
type MatrixService struct {
	engine ports.RoutingEngine
}

// NewMatrixService creates a new MatrixService.
func NewMatrixService(engine ports.RoutingEngine) *MatrixService {
	return &MatrixService{engine: engine}
}

// Compute resolves a sources-to-targets request.
func (s *MatrixService) Compute(ctx context.Context, req domain.MatrixRequest) (*domain.MatrixResult, error) {
	if len(req.Sources) == 0 || len(req.Targets) == 0 {
		return nil, fmt.Errorf("%w: at least one source and one target are required", ErrInvalid)
	}
	if len(req.Sources) > maxMatrixLocations || len(req.Targets) > maxMatrixLocations {
		return nil, fmt.Errorf("%w: matrix is limited to %d sources and targets", ErrInvalid, maxMatrixLocations)
	}
	if req.Costing == "" {
		req.Costing = costing.Auto
	}
	if !req.Costing.Valid() {
		return nil, fmt.Errorf("%w: unknown costing model %q", ErrInvalid, req.Costing)
	}
	return s.engine.Matrix(ctx, req)
}
