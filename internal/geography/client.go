package geography

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const regionsKey = "regions"

type ibgeRegion struct {
	ID    int    `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

type ibgeLocality struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

type client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
	logger  *slog.Logger
}

// New creates an IBGE-backed System. A zero cache TTL disables caching.
func New(cfg *Config, logger *slog.Logger) System {
	return NewWithClient(cfg, &http.Client{Timeout: cfg.TimeoutDuration()}, logger)
}

// NewWithClient is New with a caller-supplied http.Client.
func NewWithClient(cfg *Config, httpClient *http.Client, logger *slog.Logger) System {
	c := &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger.With("system", "geography"),
	}

	if ttl := cfg.CacheTTLDuration(); ttl > 0 {
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

func (c *client) Regions(ctx context.Context) ([]Region, error) {
	if cached, ok := c.lookup(regionsKey); ok {
		return cached.([]Region), nil
	}

	var raw []ibgeRegion
	if err := c.get(ctx, "/estados", &raw); err != nil {
		return nil, err
	}

	regions := make([]Region, len(raw))
	for i, r := range raw {
		regions[i] = Region{ID: r.ID, Code: r.Sigla, Name: r.Nome}
	}

	c.store(regionsKey, regions)
	return regions, nil
}

func (c *client) Localities(ctx context.Context, uf string) ([]Locality, error) {
	uf, err := NormalizeRegion(uf)
	if err != nil {
		return nil, err
	}

	key := "localities:" + uf
	if cached, ok := c.lookup(key); ok {
		return cached.([]Locality), nil
	}

	var raw []ibgeLocality
	if err := c.get(ctx, "/estados/"+url.PathEscape(uf)+"/municipios", &raw); err != nil {
		return nil, err
	}

	localities := make([]Locality, len(raw))
	for i, l := range raw {
		localities[i] = Locality{ID: l.ID, Name: l.Nome}
	}

	c.store(key, localities)
	return localities, nil
}

func (c *client) lookup(key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *client) store(key string, value any) {
	if c.cache == nil {
		return
	}
	c.cache.Set(key, value, cache.DefaultExpiration)
}

func (c *client) get(ctx context.Context, path string, dest any) error {
	endpoint := c.baseURL + path + "?orderBy=nome"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("provider request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", ErrUpstream, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, path, err)
	}
	return nil
}
