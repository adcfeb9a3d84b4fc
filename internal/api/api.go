// Package api assembles the HTTP API module: domain systems, their routes,
// the generated OpenAPI document, and the module middleware stack.
package api

import (
	"net/http"

	"github.com/JaimeStill/ecopoint/internal/config"
	"github.com/JaimeStill/ecopoint/internal/infrastructure"
	"github.com/JaimeStill/ecopoint/pkg/middleware"
	"github.com/JaimeStill/ecopoint/pkg/module"
	"github.com/JaimeStill/ecopoint/pkg/openapi"
)

// NewModule builds the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	return newModule(cfg, runtime, domain)
}

func newModule(cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, cfg.API.BasePath, runtime, domain)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
