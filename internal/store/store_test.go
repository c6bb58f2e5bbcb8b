package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelune/storefront/internal/model"
	"github.com/avelune/storefront/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return newTestStoreWith(t, storage.NewMemoryBackend())
}

func newTestStoreWith(t *testing.T, backend storage.Backend) *Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(context.Background(), backend, log)
	t.Cleanup(s.Close)
	return s
}

func TestStore_AddToCart_RepeatedCallsMerge(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 4; i++ {
		s.AddToCart(cartItem(7, "9.99", 99))
	}
	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, int64(7), cart[0].ID)
	assert.Equal(t, 4, cart[0].Quantity)
}

func TestStore_DecreaseQuantity_NeverDropsBelowOne(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(cartItem(1, "9.99", 0))
	s.DecreaseQuantity(1)
	s.DecreaseQuantity(1)
	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestStore_MoveWishlistToCart(t *testing.T) {
	s := newTestStore(t)
	s.AddToWishlist(model.WishlistItem{
		ID: 3, Title: "saved", Price: decimal.RequireFromString("12.50"), Image: "img",
	})

	s.MoveWishlistToCart(3)

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, int64(3), cart[0].ID)
	assert.Equal(t, 1, cart[0].Quantity)
	assert.Empty(t, s.Wishlist())

	// Same id again is a no-op: the wishlist no longer has it.
	s.MoveWishlistToCart(3)
	cart = s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
	assert.Empty(t, s.GetAllOrders())
}

func TestStore_CreateOrder(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(cartItem(1, "15.00", 0))
	s.AddToCart(cartItem(2, "11.25", 0))
	s.AddToCart(cartItem(2, "11.25", 0))

	order, ok := s.CreateOrder(model.Customer{Name: "Jane Roe", Email: "jane@example.com", Address: "1 Main St"})
	require.True(t, ok)

	assert.NotEmpty(t, order.OrderID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("37.50")),
		"total = %s", order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, "Jane Roe", order.Customer.Name)
	assert.Empty(t, s.Cart())
}

func TestStore_CreateOrder_EmptyCartIsNoop(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.CreateOrder(model.Customer{})
	assert.False(t, ok)
	assert.Empty(t, s.GetAllOrders())
}

func TestStore_OrderSnapshotIsolation(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(cartItem(1, "10.00", 0))
	order, ok := s.CreateOrder(model.Customer{})
	require.True(t, ok)

	// Mutate the live cart after checkout.
	s.AddToCart(cartItem(1, "10.00", 0))
	s.IncreaseQuantity(1)
	s.AddToCart(cartItem(2, "99.00", 0))

	stored, ok := s.GetOrder(order.OrderID)
	require.True(t, ok)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 1, stored.Items[0].Quantity)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("10.00")))

	// Mutating the returned copy must not leak into the store either.
	stored.Items[0].Quantity = 42
	again, _ := s.GetOrder(order.OrderID)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestStore_GetAllOrders_InsertionOrder(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(cartItem(1, "1.00", 0))
	first, _ := s.CreateOrder(model.Customer{})
	s.AddToCart(cartItem(2, "2.00", 0))
	second, _ := s.CreateOrder(model.Customer{})

	orders := s.GetAllOrders()
	require.Len(t, orders, 2)
	assert.Equal(t, first.OrderID, orders[0].OrderID)
	assert.Equal(t, second.OrderID, orders[1].OrderID)
}

func TestStore_UpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(cartItem(1, "1.00", 0))
	order, _ := s.CreateOrder(model.Customer{})

	s.UpdateOrderStatus(order.OrderID, model.OrderStatusShipped)
	updated, ok := s.GetOrder(order.OrderID)
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)

	// Absent id is a silent no-op.
	s.UpdateOrderStatus("no-such-order", model.OrderStatusDelivered)
	assert.Len(t, s.GetAllOrders(), 1)
}

func TestStore_GetOrder_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.GetOrder("missing")
	assert.False(t, ok)
}

func TestStore_CartReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.AddToCart(cartItem(1, "9.99", 0))
	cart := s.Cart()
	cart[0].Quantity = 99
	assert.Equal(t, 1, s.Cart()[0].Quantity)
}

func TestStore_RestartRoundTrip(t *testing.T) {
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	s := newTestStoreWith(t, backend)
	s.AddToCart(model.CartItem{ID: 1, Title: "A", Price: decimal.RequireFromString("9.99"), Image: "x"})
	s.AddToCart(model.CartItem{ID: 1, Title: "A", Price: decimal.RequireFromString("9.99"), Image: "x"})
	s.AddToWishlist(model.WishlistItem{ID: 2, Title: "B", Price: decimal.RequireFromString("5.00"), Image: "y"})
	s.Flush()

	reloaded := newTestStoreWith(t, backend)
	cart := reloaded.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, int64(1), cart[0].ID)
	assert.Equal(t, "A", cart[0].Title)
	assert.True(t, cart[0].Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, "x", cart[0].Image)

	wishlist := reloaded.Wishlist()
	require.Len(t, wishlist, 1)
	assert.Equal(t, int64(2), wishlist[0].ID)
}

func TestStore_HydrateCorruptDataFallsBackToEmpty(t *testing.T) {
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Set(context.Background(), "cart", []byte("{not json")))
	require.NoError(t, backend.Set(context.Background(), "orders", []byte(`"wrong shape"`)))

	s := newTestStoreWith(t, backend)
	assert.Empty(t, s.Cart())
	assert.Empty(t, s.GetAllOrders())
	assert.Empty(t, s.Wishlist())
}

func TestStore_ReadyClosedAfterNew(t *testing.T) {
	s := newTestStore(t)
	select {
	case <-s.Ready():
	default:
		t.Fatal("ready channel not closed after New")
	}
}
