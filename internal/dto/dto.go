package dto

import (
	"github.com/shopspring/decimal"

	"github.com/avelune/storefront/internal/model"
	"github.com/avelune/storefront/internal/pricing"
)

// --- Cart ---

// AddCartItemRequest carries the product being added. Quantity is absent on
// purpose: the store forces it to 1 on insert and increments on merge.
type AddCartItemRequest struct {
	ID    int64           `json:"id" binding:"required"`
	Title string          `json:"title" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Image string          `json:"image"`
}

type CartResponse struct {
	Items   []model.CartItem `json:"items"`
	Summary pricing.Summary  `json:"summary"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// --- Wishlist ---

type AddWishlistItemRequest struct {
	ID    int64           `json:"id" binding:"required"`
	Title string          `json:"title" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Image string          `json:"image"`
}

type WishlistResponse struct {
	Items []model.WishlistItem `json:"items"`
}

// --- Orders ---

type CheckoutRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

func (r CheckoutRequest) ToCustomer() model.Customer {
	return model.Customer{
		Name:    r.Name,
		Email:   r.Email,
		Address: r.Address,
		City:    r.City,
		Zip:     r.Zip,
	}
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required,oneof=pending processing shipped delivered"`
}

type OrderListResponse struct {
	Orders []model.Order `json:"orders"`
	Total  int           `json:"total"`
}

// --- Session ---

type SessionResponse struct {
	SignedIn bool `json:"signed_in"`
}
