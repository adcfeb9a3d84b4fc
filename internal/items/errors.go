package items

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("item not found")
	ErrDuplicate = errors.New("item title already exists")
)

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
