package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker/v2"

	"github.com/avelune/storefront/internal/catalog"
)

// ProductHandler proxies the third-party catalog for the browsing pages. It
// never touches the store.
type ProductHandler struct {
	catalog *catalog.Client
}

func NewProductHandler(catalog *catalog.Client) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) List(c *gin.Context) {
	var (
		products []catalog.Product
		err      error
	)
	if category := c.Query("category"); category != "" {
		products, err = h.catalog.ListByCategory(c.Request.Context(), category)
	} else {
		products, err = h.catalog.List(c.Request.Context())
	}
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	product, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog error"})
	}
}
