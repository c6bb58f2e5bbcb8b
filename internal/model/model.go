package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a product placed in the cart. ID is the catalog product id and
// is unique within the cart; Quantity is at least 1 while the item is present.
type CartItem struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// WishlistItem is a saved product. Membership is boolean: at most one entry
// per product id, no quantity.
type WishlistItem struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// Customer holds the billing details captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// Order is an immutable record of a checkout. Items is a value-copy of the
// cart at creation time; later cart mutations never touch it.
type Order struct {
	OrderID     string          `json:"orderId"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	Customer    Customer        `json:"customer"`
}

type OrderCreatedMessage struct {
	OrderID string `json:"order_id"`
}
