// Package handlers provides HTTP response utilities for JSON APIs.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/ecopoint/pkg/validation"
)

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes {"error": "<message>"}.
// Client errors are logged at warn, server errors at error.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// ValidationResponse is the 400 body for a request with invalid fields.
type ValidationResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields"`
}

// RespondValidation writes every field failure in a single 400 response.
func RespondValidation(w http.ResponseWriter, logger *slog.Logger, errs validation.Errors) {
	logger.Warn("validation failed", "fields", errs.Fields())
	RespondJSON(w, http.StatusBadRequest, ValidationResponse{
		Error:  "validation failed",
		Fields: errs,
	})
}
