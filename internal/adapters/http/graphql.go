package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	tripType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Trip",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.String},
			"costing":          &graphql.Field{Type: graphql.String},
			"origin":           &graphql.Field{Type: geoPointType},
			"destination":      &graphql.Field{Type: geoPointType},
			"distance_km":      &graphql.Field{Type: graphql.Float},
			"duration_seconds": &graphql.Field{Type: graphql.Float},
			"encoded_shape":    &graphql.Field{Type: graphql.String},
			"request_count":    &graphql.Field{Type: graphql.Int},
		},
	})

	statusType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EngineStatus",
		Fields: graphql.Fields{
			"version":               &graphql.Field{Type: graphql.String},
			"tileset_last_modified": &graphql.Field{Type: graphql.String},
			"available_actions":     &graphql.Field{Type: graphql.NewList(graphql.String)},
			"has_tiles":             &graphql.Field{Type: graphql.Boolean},
			"has_admins":            &graphql.Field{Type: graphql.Boolean},
			"has_timezones":         &graphql.Field{Type: graphql.Boolean},
			"has_live_traffic":      &graphql.Field{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"trips": &graphql.Field{
				Type:        graphql.NewList(tripType),
				Description: "Planned-trip history, newest first",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					offset := p.Args["offset"].(int)
					limit := p.Args["limit"].(int)
					trips, _, err := deps.Trips.List(p.Context, offset, limit)
					return trips, err
				},
			},
			"trip": &graphql.Field{
				Type:        tripType,
				Description: "Get a saved trip by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Trips.GetByID(p.Context, id)
				},
			},
			"mostRequestedTrips": &graphql.Field{
				Type:        graphql.NewList(tripType),
				Description: "Trips planned most often",
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					limit := p.Args["limit"].(int)
					return deps.Trips.MostRequested(p.Context, limit)
				},
			},
			"engineStatus": &graphql.Field{
				Type:        statusType,
				Description: "Current routing engine status",
				Args: graphql.FieldConfigArgument{
					"verbose": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					verbose := p.Args["verbose"].(bool)
					return deps.Status.Current(p.Context, verbose)
				},
			},
			"decodeShape": &graphql.Field{
				Type:        graphql.NewList(geoPointType),
				Description: "Expand an encoded polyline into coordinates",
				Args: graphql.FieldConfigArgument{
					"encoded": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"digits":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 6},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					encoded := p.Args["encoded"].(string)
					digits := p.Args["digits"].(int)
					line, err := deps.Shapes.Decode(encoded, digits)
					if err != nil {
						return nil, err
					}
					return line.Coordinates, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
