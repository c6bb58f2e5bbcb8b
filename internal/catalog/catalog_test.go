package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productJSON = `{
	"id": 1,
	"title": "Fjallraven Backpack",
	"price": 109.95,
	"description": "Fits 15 inch laptops",
	"category": "men's clothing",
	"image": "https://example.test/1.jpg",
	"rating": {"rate": 3.9, "count": 120}
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL, 5*time.Second, time.Minute, nil, log)
}

func TestClient_GetByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/1", r.URL.Path)
		w.Write([]byte(productJSON))
	})

	product, err := c.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Fjallraven Backpack", product.Title)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("109.95")))
	assert.Equal(t, "men's clothing", product.Category)
	assert.Equal(t, 3.9, product.Rating.Rate)
	assert.Equal(t, 120, product.Rating.Count)
}

func TestClient_GetByID_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestClient_GetByID_EmptyBodyIsNotFound(t *testing.T) {
	// The fakestore API answers unknown ids with 200 and no body.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte("[" + productJSON + "]"))
	})

	products, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Fjallraven Backpack", products[0].Title)
}

func TestClient_ListCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		w.Write([]byte(`["electronics","jewelery"]`))
	})

	categories, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery"}, categories)
}

func TestClient_ListByCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/electronics", r.URL.Path)
		w.Write([]byte("[" + productJSON + "]"))
	})

	products, err := c.ListByCategory(context.Background(), "electronics")
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestClient_UpstreamErrorIsWrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}
