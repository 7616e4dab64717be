package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/fitpass/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	gymType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Gym",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"phone":       &graphql.Field{Type: graphql.String},
			"latitude": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return gymFromSource(p)["latitude"], nil
				},
			},
			"longitude": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return gymFromSource(p)["longitude"], nil
				},
			},
			"distanceMeters": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return gymFromSource(p)["distanceMeters"], nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"gym": &graphql.Field{
				Type:        gymType,
				Description: "Get a gym by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					gym, err := deps.Gyms.GetByID(p.Context, id)
					if err != nil {
						return nil, err
					}
					return gymMap(toGymResponse(*gym)), nil
				},
			},
			"searchGyms": &graphql.Field{
				Type:        graphql.NewList(gymType),
				Description: "Search gyms by title (fuzzy matching)",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					page := p.Args["page"].(int)
					gyms, _, err := deps.Gyms.SearchByTitle(p.Context, q, page)
					if err != nil {
						return nil, err
					}
					return gymMaps(gyms), nil
				},
			},
			"nearbyGyms": &graphql.Field{
				Type:        graphql.NewList(gymType),
				Description: "Find gyms near a location",
				Args: graphql.FieldConfigArgument{
					"latitude":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"longitude": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["latitude"].(float64)
					lon := p.Args["longitude"].(float64)
					gyms, err := deps.Gyms.FindNearby(p.Context, lat, lon, 0)
					if err != nil {
						return nil, err
					}
					return gymMaps(gyms), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

func gymMap(r gymResponse) map[string]interface{} {
	m := map[string]interface{}{
		"id":          r.ID,
		"title":       r.Title,
		"description": r.Description,
		"phone":       r.Phone,
		"latitude":    r.Latitude,
		"longitude":   r.Longitude,
	}
	if r.Distance != nil {
		m["distanceMeters"] = *r.Distance
	}
	return m
}

func gymMaps(gyms []domain.Gym) []map[string]interface{} {
	out := make([]map[string]interface{}, len(gyms))
	for i, g := range gyms {
		out[i] = gymMap(toGymResponse(g))
	}
	return out
}

func gymFromSource(p graphql.ResolveParams) map[string]interface{} {
	if m, ok := p.Source.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
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
