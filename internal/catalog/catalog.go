// Package catalog is a read-only client for the public fakestore product API.
// Page-level handlers call it directly; the store never does. Responses are
// cached in Redis with a short TTL when a client is configured, and outbound
// calls run behind a circuit breaker so a flapping catalog fails fast instead
// of piling up requests.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

var ErrProductNotFound = errors.New("product not found")

const cacheKeyPrefix = "catalog:"

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

type Client struct {
	baseURL  string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[[]byte]
	cache    *redis.Client
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewClient builds a catalog client. cache may be nil, in which case every
// call goes to the upstream API.
func NewClient(baseURL string, timeout time.Duration, cacheTTL time.Duration, cache *redis.Client, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    "catalog",
			Timeout: 30 * time.Second,
			// A missing product is an answer, not an upstream failure.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrProductNotFound)
			},
		}),
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetByID(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products/category/"+category, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	cacheKey := cacheKeyPrefix + path

	// Try cache
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			if json.Unmarshal(cached, out) == nil {
				return nil
			}
		}
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, path)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}

	// Write to cache
	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.cacheTTL).Err(); err != nil {
			c.log.Warn("cache catalog response", "key", cacheKey, "error", err)
		}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	// The fakestore API returns 200 with an empty body for unknown ids.
	if len(body) == 0 {
		return nil, ErrProductNotFound
	}
	return body, nil
}
