// Package uploads serves stored blobs (item icons and point photos) by key.
package uploads

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/ecopoint/pkg/handlers"
	"github.com/JaimeStill/ecopoint/pkg/openapi"
	"github.com/JaimeStill/ecopoint/pkg/routes"
	"github.com/JaimeStill/ecopoint/pkg/storage"
)

// Handler streams blobs out of storage.
type Handler struct {
	storage storage.System
	logger  *slog.Logger
}

func NewHandler(storage storage.System, logger *slog.Logger) *Handler {
	return &Handler{
		storage: storage,
		logger:  logger.With("handler", "uploads"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/uploads",
		Tags:        []string{"Uploads"},
		Description: "Stored image download",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.Get, OpenAPI: Spec.Get},
		},
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	data, err := h.storage.Retrieve(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	contentType := http.DetectContentType(data)
	if contentType == "text/xml; charset=utf-8" || isSVG(key) {
		contentType = "image/svg+xml"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// MapHTTPStatus converts storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrPermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func isSVG(key string) bool {
	return len(key) > 4 && key[len(key)-4:] == ".svg"
}

type spec struct {
	Get *openapi.Operation
}

var Spec = spec{
	Get: &openapi.Operation{
		Summary:     "Download upload",
		Description: "Download a stored image by storage key",
		Parameters: []*openapi.Parameter{
			openapi.StringPathParam("key", "Storage key, e.g. points/<id>/photo.jpg"),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Image content"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
