package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/imanolea/wayfinder/internal/adapters/valhalla"
	"github.com/imanolea/wayfinder/internal/core/domain"
	"github.com/imanolea/wayfinder/internal/core/usecases"
	"github.com/imanolea/wayfinder/internal/pkg/polyline"
)

// respondError maps service errors onto the API error surface. Engine
// rejections keep the status the engine chose; codec and validation
// failures are client errors.
func respondError(c *fiber.Ctx, err error) error {
	var remote *valhalla.RemoteError
	switch {
	case errors.As(err, &remote):
		status := remote.StatusCode
		if status < 400 || status > 499 {
			status = 502
		}
		return newError(c, status, "engine_rejected", remote.Message)
	case errors.Is(err, usecases.ErrInvalid):
		return errBadRequest(c, err.Error())
	case errors.Is(err, polyline.ErrMalformed):
		return errBadRequest(c, err.Error())
	case errors.Is(err, polyline.ErrOverflow):
		return errBadRequest(c, err.Error())
	case errors.Is(err, pgx.ErrNoRows):
		return errNotFound(c, "not found")
	default:
		return errInternal(c, err.Error())
	}
}

// PlanRouteHandler plans a turn-by-turn route.
func PlanRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req domain.PlanRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		route, err := deps.Routing.Plan(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(route)
	}
}

// MatrixHandler computes a sources-to-targets time-distance matrix.
func MatrixHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req domain.MatrixRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result, err := deps.Matrix.Compute(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	}
}

// ElevationHandler samples terrain heights along a shape.
func ElevationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req domain.ElevationRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		profile, err := deps.Elevation.Profile(c.UserContext(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(profile)
	}
}

// EngineStatusHandler reports the upstream engine's health and tileset age.
func EngineStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		verbose := c.QueryBool("verbose", false)

		status, err := deps.Status.Current(c.UserContext(), verbose)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(status)
	}
}

// LastStatusHandler returns the most recent persisted status observation
// without contacting the engine.
func LastStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := deps.Status.LastRecorded(c.UserContext())
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errNotFound(c, "no status recorded yet")
			}
			return respondError(c, err)
		}
		return c.JSON(status)
	}
}

// ListTripsHandler returns a page of planned-trip history.
func ListTripsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 20)

		trips, total, err := deps.Trips.List(c.UserContext(), offset, limit)
		if err != nil {
			return respondError(c, err)
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: trips, Pagination: pg})
	}
}

// GetTripHandler returns a saved trip by ID.
func GetTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "trip id is required")
		}

		trip, err := deps.Trips.GetByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errNotFound(c, "trip not found")
			}
			return respondError(c, err)
		}
		return c.JSON(trip)
	}
}

// shapeRequest is the body of both shape conversion endpoints.
type shapeRequest struct {
	EncodedShape string            `json:"encoded_shape,omitempty"`
	Coordinates  []domain.GeoPoint `json:"coordinates,omitempty"`
	ShapeDigits  int               `json:"shape_digits,omitempty"`
}

// DecodeShapeHandler expands an encoded polyline into coordinates.
func DecodeShapeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req shapeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		line, err := deps.Shapes.Decode(req.EncodedShape, req.ShapeDigits)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"coordinates": line.Coordinates,
			"count":       len(line.Coordinates),
		})
	}
}

// EncodeShapeHandler compacts coordinates into an encoded polyline.
func EncodeShapeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req shapeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		encoded, err := deps.Shapes.Encode(domain.GeoLineString{Coordinates: req.Coordinates}, req.ShapeDigits)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"encoded_shape": encoded})
	}
}
