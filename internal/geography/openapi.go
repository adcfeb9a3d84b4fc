package geography

import "github.com/JaimeStill/ecopoint/pkg/openapi"

type spec struct {
	Regions    *openapi.Operation
	Localities *openapi.Operation
}

var Spec = spec{
	Regions: &openapi.Operation{
		Summary:     "List regions",
		Description: "List all states ordered by name",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Regions", "Region"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Localities: &openapi.Operation{
		Summary:     "List localities",
		Description: "List the municipalities of a state ordered by name",
		Parameters: []*openapi.Parameter{
			openapi.StringPathParam("uf", "Two-letter state code"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Localities", "Locality"),
			400: openapi.ResponseRef("BadRequest"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Region": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":   {Type: "integer"},
				"code": {Type: "string", Example: "SP"},
				"name": {Type: "string", Example: "São Paulo"},
			},
		},
		"Locality": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":   {Type: "integer"},
				"name": {Type: "string"},
			},
		},
	}
}
