package geography

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ecopoint/pkg/handlers"
	"github.com/JaimeStill/ecopoint/pkg/routes"
)

// Handler proxies region and locality lookups so clients share the server cache.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "geography"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/regions",
		Tags:        []string{"Geography"},
		Description: "Region and locality lookup",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Regions, OpenAPI: Spec.Regions},
			{Method: "GET", Pattern: "/{uf}/localities", Handler: h.Localities, OpenAPI: Spec.Localities},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.sys.Regions(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, regions)
}

func (h *Handler) Localities(w http.ResponseWriter, r *http.Request) {
	localities, err := h.sys.Localities(r.Context(), r.PathValue("uf"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, localities)
}
