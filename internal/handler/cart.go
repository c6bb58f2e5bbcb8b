package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avelune/storefront/internal/dto"
	"github.com/avelune/storefront/internal/model"
	"github.com/avelune/storefront/internal/pricing"
	"github.com/avelune/storefront/internal/store"
)

type CartHandler struct {
	store *store.Store
}

func NewCartHandler(store *store.Store) *CartHandler {
	return &CartHandler{store: store}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	items := h.store.Cart()
	summary, err := pricing.Summarize(items, c.Query("coupon"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid coupon"})
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Items: items, Summary: summary})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.AddToCart(model.CartItem{
		ID:    req.ID,
		Title: req.Title,
		Price: req.Price,
		Image: req.Image,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "item added"})
}

func (h *CartHandler) IncreaseQuantity(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.store.IncreaseQuantity(id)
	c.JSON(http.StatusOK, gin.H{"message": "quantity increased"})
}

func (h *CartHandler) DecreaseQuantity(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.store.DecreaseQuantity(id)
	c.JSON(http.StatusOK, gin.H{"message": "quantity decreased"})
}

func (h *CartHandler) DeleteItem(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.store.RemoveFromCart(id)
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Clear(c *gin.Context) {
	h.store.ClearCart()
	c.Status(http.StatusNoContent)
}

// ApplyCoupon validates a coupon against the current cart. Invalid codes get
// a 422 notification; stored prices are never mutated either way.
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req dto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items := h.store.Cart()
	summary, err := pricing.Summarize(items, req.Code)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidCoupon) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid coupon"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Items: items, Summary: summary})
}

func parseProductID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
