package points

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound         = errors.New("point not found")
	ErrDuplicate        = errors.New("point already exists")
	ErrInvalidItems     = errors.New("invalid items")
	ErrInvalidForm      = errors.New("malformed request body")
	ErrUnexpectedFile   = errors.New("only one file under the image field is accepted")
	ErrFileTooLarge     = errors.New("request exceeds maximum upload size")
	ErrInvalidFile      = errors.New("invalid image file")
	ErrUnsupportedImage = errors.New("image must be jpeg, png, gif or webp")
)

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrInvalidItems),
		errors.Is(err, ErrInvalidForm),
		errors.Is(err, ErrUnexpectedFile),
		errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
