// Package geography reads Brazilian states (regions) and their municipalities
// (localities) from the IBGE localities API, caching responses in memory.
package geography

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// DefaultBaseURL is the IBGE localities API root.
const DefaultBaseURL = "https://servicodados.ibge.gov.br/api/v1/localidades"

var (
	ErrUpstream      = errors.New("geography provider request failed")
	ErrInvalidRegion = errors.New("region code must be two letters")
)

// Region is a first-level administrative division, identified by Code (UF).
type Region struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Locality is a municipality within a region.
type Locality struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// System lists regions and the localities of one region, both ordered by name.
type System interface {
	Regions(ctx context.Context) ([]Region, error)
	Localities(ctx context.Context, uf string) ([]Locality, error)
}

// NormalizeRegion upper-cases uf and checks it is two ASCII letters.
func NormalizeRegion(uf string) (string, error) {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if len(uf) != 2 {
		return "", ErrInvalidRegion
	}
	for _, r := range uf {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidRegion
		}
	}
	return uf, nil
}

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRegion) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUpstream) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
