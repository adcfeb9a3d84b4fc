package api

import (
	"net/http"

	"github.com/JaimeStill/ecopoint/internal/geography"
	"github.com/JaimeStill/ecopoint/internal/items"
	"github.com/JaimeStill/ecopoint/internal/points"
	"github.com/JaimeStill/ecopoint/internal/uploads"
	"github.com/JaimeStill/ecopoint/pkg/openapi"
	"github.com/JaimeStill/ecopoint/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, basePath string, runtime *Runtime, domain *Domain) {
	itemsHandler := items.NewHandler(domain.Items, runtime.Logger)
	pointsHandler := points.NewHandler(domain.Points, runtime.Logger, runtime.Pagination, runtime.MaxUploadSize)
	uploadsHandler := uploads.NewHandler(runtime.Storage, runtime.Logger)
	geographyHandler := geography.NewHandler(domain.Geography, runtime.Logger)

	routes.Register(
		mux,
		basePath,
		spec,
		itemsHandler.Routes(),
		pointsHandler.Routes(),
		uploadsHandler.Routes(),
		geographyHandler.Routes(),
	)
}
