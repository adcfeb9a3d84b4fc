package items

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ecopoint/pkg/handlers"
	"github.com/JaimeStill/ecopoint/pkg/routes"
)

// Handler provides HTTP endpoints for item categories.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "items"),
	}
}

// Routes returns the item endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/items",
		Tags:        []string{"Items"},
		Description: "Recyclable waste categories",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}
