package vpic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"carpick/internal/metrics"
	"carpick/internal/models"
	"carpick/internal/registry"
	"carpick/pkg/log"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config configures a Client. The zero value talks to the public API with no
// timeout, no rate limit and no memo.
type Config struct {
	BaseURL string
	// Timeout of 0 leaves the http.Client default (none).
	Timeout time.Duration
	// Rate is the outbound request rate per second; 0 disables limiting.
	Rate  float64
	Burst int
	// CacheTTL > 0 memoizes successful lookups for the session.
	CacheTTL time.Duration

	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

// Client implements registry.Provider against the vPIC HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	memo    *cache.Cache
	metrics *metrics.Metrics
}

var _ registry.Provider = (*Client)(nil)

func New(cfg Config) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		http:    cfg.HTTPClient,
		metrics: cfg.Metrics,
	}
	if c.baseURL == "" {
		c.baseURL = registry.DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}
	if cfg.CacheTTL > 0 {
		c.memo = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c
}

func (c *Client) Manufacturers(ctx context.Context) registry.Result[models.Manufacturer] {
	return fetch[models.Manufacturer](ctx, c, registry.EndpointManufacturers, "fetching manufacturers")
}

func (c *Client) Makes(ctx context.Context, manufacturerID int) registry.Result[models.Make] {
	return fetch[models.Make](ctx, c, registry.EndpointMakes,
		fmt.Sprintf("fetching makes for manufacturer %d", manufacturerID), manufacturerID)
}

func (c *Client) Models(ctx context.Context, makeID int) registry.Result[models.Model] {
	return fetch[models.Model](ctx, c, registry.EndpointModels,
		fmt.Sprintf("fetching models for make %d", makeID), makeID)
}

func fetch[T models.Entity](ctx context.Context, c *Client, endpoint registry.Endpoint, op string, id ...any) registry.Result[T] {
	url, err := endpoint.URL(c.baseURL, id...)
	if err != nil {
		return failed[T](c, endpoint, url, fmt.Errorf("%s: %w", op, err), 0)
	}

	if c.memo != nil {
		if v, ok := c.memo.Get(url); ok {
			c.metrics.CacheHit(endpoint.Name)
			return registry.Ok(slices.Clone(v.([]T)))
		}
	}

	start := time.Now()
	items, err := get[T](ctx, c, url)
	elapsed := time.Since(start)
	if err != nil {
		return failed[T](c, endpoint, url, fmt.Errorf("%s: %w", op, err), elapsed)
	}

	registry.Sort(items)
	if c.memo != nil {
		c.memo.SetDefault(url, slices.Clone(items))
	}

	res := registry.Ok(items)
	c.metrics.ObserveFetch(endpoint.Name, res.Outcome.String(), elapsed)
	log.Debug("registry lookup",
		zap.String("endpoint", endpoint.Name),
		zap.String("url", url),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("count", len(res.Items)),
		zap.Duration("elapsed", elapsed),
	)
	return res
}

func get[T models.Entity](ctx context.Context, c *Client, url string) ([]T, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var envelope models.Response[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if envelope.Results == nil {
		return []T{}, nil
	}
	return envelope.Results, nil
}

// failed logs err and folds it into an empty result.
func failed[T models.Entity](c *Client, endpoint registry.Endpoint, url string, err error, elapsed time.Duration) registry.Result[T] {
	c.metrics.ObserveFetch(endpoint.Name, registry.OutcomeFailed.String(), elapsed)
	log.Error("registry lookup failed",
		zap.String("endpoint", endpoint.Name),
		zap.String("url", url),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
	return registry.Failed[T](err)
}
