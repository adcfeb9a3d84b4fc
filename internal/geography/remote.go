package geography

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type remote struct {
	baseURL string
	http    *http.Client
}

// NewRemote creates a System that reads through the service's own
// /regions proxy at apiURL (for example "http://localhost:3333/api").
func NewRemote(apiURL string, httpClient *http.Client) System {
	return &remote{
		baseURL: strings.TrimRight(apiURL, "/"),
		http:    httpClient,
	}
}

func (r *remote) Regions(ctx context.Context) ([]Region, error) {
	var regions []Region
	if err := r.get(ctx, "/regions", &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *remote) Localities(ctx context.Context, uf string) ([]Locality, error) {
	uf, err := NormalizeRegion(uf)
	if err != nil {
		return nil, err
	}

	var localities []Locality
	if err := r.get(ctx, "/regions/"+url.PathEscape(uf)+"/localities", &localities); err != nil {
		return nil, err
	}
	return localities, nil
}

func (r *remote) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		return fmt.Errorf("%w: %s returned %d %s", ErrUpstream, path, resp.StatusCode, body.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, path, err)
	}
	return nil
}
