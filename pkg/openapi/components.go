package openapi

// NewComponents returns components pre-populated with the shared error
// responses and the PageRequest schema.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "1-based page number"},
					"page_size": {Type: "integer", Description: "Items per page"},
					"search":    {Type: "string", Description: "Free text search"},
					"sort":      {Type: "string", Description: "Comma-separated fields, '-' prefix for descending"},
				},
			},
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "Invalid request",
				Content:     map[string]*MediaType{"application/json": {Schema: SchemaRef("Error")}},
			},
			"NotFound": {
				Description: "Resource not found",
				Content:     map[string]*MediaType{"application/json": {Schema: SchemaRef("Error")}},
			},
			"Conflict": {
				Description: "Resource already exists",
				Content:     map[string]*MediaType{"application/json": {Schema: SchemaRef("Error")}},
			},
			"BadGateway": {
				Description: "Upstream provider failed",
				Content:     map[string]*MediaType{"application/json": {Schema: SchemaRef("Error")}},
			},
		},
	}
}

// AddSchemas merges schemas, replacing entries with the same name.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses, replacing entries with the same name.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		c.Responses[name] = response
	}
}
