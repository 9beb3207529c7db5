package valhalla

import (
	"context"

	"github.com/imanolea/wayfinder/internal/core/costing"
	"github.com/imanolea/wayfinder/internal/core/domain"
)

type matrixManifest struct {
	Costing        costing.Model    `json:"costing"`
	CostingOptions *costing.Options `json:"costing_options,omitempty"`
	Sources        []location       `json:"sources"`
	Targets        []location       `json:"targets"`
	// Verbose output carries from/to indexes per cell; the concise form
	// only has bare duration and distance grids.
	Verbose bool `json:"verbose"`
}

type matrixResponse struct {
	Algorithm        string             `json:"algorithm"`
	Units            string             `json:"units"`
	SourcesToTargets [][]wireMatrixCell `json:"sources_to_targets"`
}

type wireMatrixCell struct {
	Distance  float64 `json:"distance"`
	Time      int     `json:"time"`
	FromIndex int     `json:"from_index"`
	ToIndex   int     `json:"to_index"`
}

// Matrix computes a sources-to-targets time-distance matrix.
func (c *Client) Matrix(ctx context.Context, req domain.MatrixRequest) (*domain.MatrixResult, error) {
	manifest := matrixManifest{
		Costing:        req.Costing,
		CostingOptions: req.CostingOptions,
		Sources:        toLocations(req.Sources),
		Targets:        toLocations(req.Targets),
		Verbose:        true,
	}

	var resp matrixResponse
	if err := c.post(ctx, "sources_to_targets", manifest, &resp); err != nil {
		return nil, err
	}

	result := &domain.MatrixResult{
		Algorithm: resp.Algorithm,
		Units:     resp.Units,
		Cells:     make([][]domain.MatrixCell, len(resp.SourcesToTargets)),
	}
	for i, row := range resp.SourcesToTargets {
		cells := make([]domain.MatrixCell, len(row))
		for j, cell := range row {
			cells[j] = domain.MatrixCell{
				FromIndex:   cell.FromIndex,
				ToIndex:     cell.ToIndex,
				TimeSeconds: cell.Time,
				DistanceKm:  cell.Distance,
			}
		}
		result.Cells[i] = cells
	}
	return result, nil
}
