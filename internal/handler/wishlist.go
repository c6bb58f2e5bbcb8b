package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelune/storefront/internal/dto"
	"github.com/avelune/storefront/internal/model"
	"github.com/avelune/storefront/internal/store"
)

type WishlistHandler struct {
	store *store.Store
}

func NewWishlistHandler(store *store.Store) *WishlistHandler {
	return &WishlistHandler{store: store}
}

func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	c.JSON(http.StatusOK, dto.WishlistResponse{Items: h.store.Wishlist()})
}

func (h *WishlistHandler) AddItem(c *gin.Context) {
	var req dto.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.AddToWishlist(model.WishlistItem{
		ID:    req.ID,
		Title: req.Title,
		Price: req.Price,
		Image: req.Image,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "item saved"})
}

func (h *WishlistHandler) DeleteItem(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.store.RemoveFromWishlist(id)
	c.Status(http.StatusNoContent)
}

// MoveToCart is a silent no-op for ids absent from the wishlist, matching the
// store's semantics.
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.store.MoveWishlistToCart(id)
	c.JSON(http.StatusOK, gin.H{"message": "moved to cart"})
}
