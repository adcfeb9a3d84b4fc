package main

import (
	"net/http"

	"github.com/JaimeStill/ecopoint/internal/api"
	"github.com/JaimeStill/ecopoint/internal/config"
	"github.com/JaimeStill/ecopoint/internal/infrastructure"
	"github.com/JaimeStill/ecopoint/pkg/lifecycle"
	"github.com/JaimeStill/ecopoint/pkg/module"
	"github.com/JaimeStill/ecopoint/web/scalar"
)

// Modules holds the mounted HTTP modules.
type Modules struct {
	API  *module.Module
	Docs *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	docsModule, err := scalar.NewModule(
		"/docs",
		cfg.API.OpenAPI.Title,
		cfg.API.BasePath+"/openapi.json",
	)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule, Docs: docsModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Docs)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", handleHealth)
	router.HandleNative("GET /readyz", handleReady(infra.Lifecycle))

	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReady(ready lifecycle.ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ready.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
