package points

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/ecopoint/pkg/query"
)

// Filters contains optional criteria for listing points. A point matches
// Items when it collects at least one of them.
type Filters struct {
	City  *string
	UF    *string
	Items []int
}

// FiltersFromQuery extracts point filters from URL query parameters.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if c := strings.TrimSpace(values.Get("city")); c != "" {
		f.City = &c
	}

	if uf := strings.TrimSpace(values.Get("uf")); uf != "" {
		uf = strings.ToUpper(uf)
		f.UF = &uf
	}

	if raw := values.Get("items"); strings.TrimSpace(raw) != "" {
		ids, err := ParseItems(raw)
		if err != nil {
			return f, err
		}
		f.Items = ids
	}

	return f, nil
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.City != nil {
		b.WhereEquals("City", *f.City)
	}
	if f.UF != nil {
		b.WhereEquals("UF", *f.UF)
	}
	if len(f.Items) > 0 {
		ids := make([]any, len(f.Items))
		for i, id := range f.Items {
			ids[i] = id
		}
		b.WhereExists(
			"SELECT 1 FROM public.point_items pi WHERE pi.point_id = "+projection.Column("ID"),
			"pi.item_id",
			ids,
		)
	}
	return b
}

// ParseItems reads a comma-separated list of positive item ids. Entries are
// trimmed and duplicates dropped, keeping first-seen order. At least one id
// is required.
func ParseItems(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		id, err := strconv.Atoi(part)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("%w: %q is not an item id", ErrInvalidItems, part)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, nil
}
