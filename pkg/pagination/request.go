package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/ecopoint/pkg/query"
)

// PageRequest is a client's request for one page of a listing.
type PageRequest struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Search   *string           `json:"search,omitempty"`
	Sort     []query.SortField `json:"sort,omitempty"`
}

// PageRequestFromQuery reads page, page_size, search and sort from values.
// Sort is comma-separated with a "-" prefix for descending order. Numbers
// that do not parse count as unset, and the result is normalized against cfg.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	req := PageRequest{
		Page:     queryInt(values, "page"),
		PageSize: queryInt(values, "page_size"),
		Search:   queryText(values, "search"),
		Sort:     query.ParseSortFields(values.Get("sort")),
	}
	req.Normalize(cfg)
	return req
}

// Normalize raises Page to at least 1 and keeps PageSize within
// cfg.MaxPageSize, substituting cfg.DefaultPageSize when it is unset.
func (r *PageRequest) Normalize(cfg Config) {
	r.Page = max(r.Page, 1)
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	r.PageSize = min(r.PageSize, cfg.MaxPageSize)
}

// Offset is the number of rows that precede the requested page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

func queryInt(values url.Values, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(values.Get(key)))
	if err != nil {
		return 0
	}
	return n
}

func queryText(values url.Values, key string) *string {
	s := strings.TrimSpace(values.Get(key))
	if s == "" {
		return nil
	}
	return &s
}
