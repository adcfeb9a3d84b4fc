package items

import "github.com/JaimeStill/ecopoint/pkg/openapi"

type spec struct {
	List *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List items",
		Description: "List every waste category ordered by title",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Items", "Item"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Item": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "integer"},
				"title":     {Type: "string", Example: "Lâmpadas"},
				"image":     {Type: "string", Description: "Icon storage key"},
				"image_url": {Type: "string", Format: "uri", Description: "Icon download address"},
			},
		},
	}
}
