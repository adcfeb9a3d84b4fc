package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/ecopoint/pkg/openapi"
	"github.com/JaimeStill/ecopoint/pkg/routes"
)

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body + r.PathValue("id")))
	}
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/points",
		Tags:   []string{"Points"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: respond("list"), OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "GET", Pattern: "/{id}", Handler: respond("find:"), OpenAPI: &openapi.Operation{Summary: "Find", Tags: []string{"Custom"}}},
			{Method: "POST", Pattern: "", Handler: respond("create")},
		},
		Children: []routes.Group{
			{
				Prefix: "/nearby",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: respond("nearby"), OpenAPI: &openapi.Operation{Summary: "Nearby"}},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{"Point": {Type: "object"}},
	}
}

func TestRegister_Mux(t *testing.T) {
	mux := http.NewServeMux()
	spec := openapi.NewSpec("test", "1")
	routes.Register(mux, "/api", spec, testGroup())

	tests := []struct {
		method string
		target string
		want   string
	}{
		{http.MethodGet, "/points", "list"},
		{http.MethodGet, "/points/abc", "find:abc"},
		{http.MethodPost, "/points", "create"},
		{http.MethodGet, "/points/nearby", "nearby"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		if got := rec.Body.String(); got != tt.want {
			t.Errorf("%s %s = %q, want %q", tt.method, tt.target, got, tt.want)
		}
	}
}

func TestRegister_Spec(t *testing.T) {
	spec := openapi.NewSpec("test", "1")
	routes.Register(http.NewServeMux(), "/api", spec, testGroup())

	list, ok := spec.Paths["/api/points"]
	if !ok || list.Get == nil {
		t.Fatal("missing GET /api/points")
	}
	if list.Post != nil {
		t.Error("undocumented POST added to spec")
	}
	if len(list.Get.Tags) != 1 || list.Get.Tags[0] != "Points" {
		t.Errorf("inherited tags = %v", list.Get.Tags)
	}

	find := spec.Paths["/api/points/{id}"]
	if find == nil || find.Get.Tags[0] != "Custom" {
		t.Error("explicit tags should be kept")
	}

	if spec.Paths["/api/points/nearby"] == nil {
		t.Error("child group not documented")
	}
	if _, ok := spec.Components.Schemas["Point"]; !ok {
		t.Error("group schema not merged")
	}
	if _, ok := spec.Components.Schemas["Error"]; !ok {
		t.Error("default Error schema missing")
	}
}
