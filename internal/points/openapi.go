package points

import "github.com/JaimeStill/ecopoint/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List points",
		Description: "List collection points with pagination and optional location and item filters",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in name and city", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields, '-' prefix for descending", false),
			openapi.QueryParam("city", "string", "Filter by city", false),
			openapi.QueryParam("uf", "string", "Filter by two-letter state code", false),
			openapi.QueryParam("items", "string", "Comma-separated item ids; matches points collecting any of them", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Points list", "PointPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find point",
		Description: "Find a collection point and the items it collects",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Point ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Point details", "PointDetail"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create point",
		Description: "Register a collection point. Every text field is validated before the optional image is accepted.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data":               {Schema: createSchema(true)},
				"application/x-www-form-urlencoded": {Schema: createSchema(false)},
				"application/json":                  {Schema: createSchema(false)},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Point created", "PointDetail"),
			400: openapi.ResponseJSON("Invalid fields", "ValidationError"),
			413: {Description: "Request too large"},
			415: {Description: "Unsupported image type"},
		},
	},
}

// createSchema describes the submission fields. Only multipart bodies
// carry the image.
func createSchema(withImage bool) *openapi.Schema {
	props := map[string]*openapi.Schema{
		"name":      {Type: "string", Description: "At most 255 characters"},
		"email":     {Type: "string", Format: "email"},
		"whatsapp":  {Type: "string", Description: "Digits only"},
		"latitude":  {Type: "string", Description: "Decimal degrees between -90 and 90"},
		"longitude": {Type: "string", Description: "Decimal degrees between -180 and 180"},
		"city":      {Type: "string", Description: "At most 100 characters"},
		"uf":        {Type: "string", Description: "Two-letter state code"},
		"items":     {Type: "string", Description: "Comma-separated item ids", Example: "1,2,6"},
	}
	if withImage {
		props["image"] = &openapi.Schema{Type: "string", Format: "binary", Description: "Optional jpeg, png, gif or webp photo"}
	}
	return &openapi.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{"name", "email", "whatsapp", "latitude", "longitude", "city", "uf", "items"},
	}
}

func (spec) Schemas() map[string]*openapi.Schema {
	pointProperties := map[string]*openapi.Schema{
		"id":         {Type: "string", Format: "uuid"},
		"image":      {Type: "string", Description: "Photo storage key, empty when none"},
		"image_url":  {Type: "string", Description: "Photo download address"},
		"name":       {Type: "string"},
		"email":      {Type: "string", Format: "email"},
		"whatsapp":   {Type: "string"},
		"latitude":   {Type: "number", Format: "double"},
		"longitude":  {Type: "number", Format: "double"},
		"city":       {Type: "string"},
		"uf":         {Type: "string"},
		"created_at": {Type: "string", Format: "date-time"},
		"updated_at": {Type: "string", Format: "date-time"},
	}

	detailProperties := make(map[string]*openapi.Schema, len(pointProperties)+1)
	for k, v := range pointProperties {
		detailProperties[k] = v
	}
	detailProperties["items"] = &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Item")}

	return map[string]*openapi.Schema{
		"Point": {
			Type:       "object",
			Properties: pointProperties,
		},
		"PointDetail": {
			Type:       "object",
			Properties: detailProperties,
		},
		"PointPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Point")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"ValidationError": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error": {Type: "string"},
				"fields": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"field":   {Type: "string"},
							"kind":    {Type: "string", Enum: []string{"missing", "type", "malformed", "too_long"}},
							"message": {Type: "string"},
						},
					},
				},
			},
		},
	}
}
