package http

import (
	"github.com/nats-io/nats.go"

	"github.com/imanolea/wayfinder/internal/adapters/postgres"
	"github.com/imanolea/wayfinder/internal/adapters/valkey"
	"github.com/imanolea/wayfinder/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Routing   *usecases.RoutingService
	Matrix    *usecases.MatrixService
	Elevation *usecases.ElevationService
	Status    *usecases.StatusService
	Trips     *usecases.TripService
	Shapes    *usecases.ShapeService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
}
