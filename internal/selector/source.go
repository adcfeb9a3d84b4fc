package selector

import (
	"context"

	"github.com/JaimeStill/ecopoint/internal/geography"
)

type geographySource struct {
	sys geography.System
}

// FromGeography adapts a geography.System into a Source of region codes
// and locality names.
func FromGeography(sys geography.System) Source {
	return &geographySource{sys: sys}
}

func (g *geographySource) RegionCodes(ctx context.Context) ([]string, error) {
	regions, err := g.sys.Regions(ctx)
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(regions))
	for i, r := range regions {
		codes[i] = r.Code
	}
	return codes, nil
}

func (g *geographySource) LocalityNames(ctx context.Context, uf string) ([]string, error) {
	localities, err := g.sys.Localities(ctx, uf)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(localities))
	for i, l := range localities {
		names[i] = l.Name
	}
	return names, nil
}
