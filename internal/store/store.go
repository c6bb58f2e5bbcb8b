// Package store owns the cart, wishlist, and order collections. One Store is
// constructed per process and injected into its consumers; all mutation goes
// through its methods, reads return defensive copies. Every mutation hands the
// owning collection's serialized snapshot to the persister, which mirrors it
// to the storage backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avelune/storefront/internal/model"
	"github.com/avelune/storefront/internal/pricing"
	"github.com/avelune/storefront/internal/storage"
)

const (
	keyCart     = "cart"
	keyWishlist = "wishlist"
	keyOrders   = "orders"
)

type Store struct {
	log     *slog.Logger
	persist *persister
	ready   chan struct{}

	mu       sync.Mutex
	cart     []model.CartItem
	wishlist []model.WishlistItem
	orders   []model.Order
}

// New hydrates all three collections from the backend and starts the
// persister. Missing keys and unparsable values fall back to an empty
// collection; neither is an error for the caller. The returned Store is fully
// hydrated — Ready is for consumers handed the Store before New returns.
func New(ctx context.Context, backend storage.Backend, log *slog.Logger) *Store {
	s := &Store{
		log:      log,
		cart:     hydrate[model.CartItem](ctx, backend, keyCart, log),
		wishlist: hydrate[model.WishlistItem](ctx, backend, keyWishlist, log),
		orders:   hydrate[model.Order](ctx, backend, keyOrders, log),
		ready:    make(chan struct{}),
	}
	s.persist = newPersister(backend, log)
	close(s.ready)
	return s
}

func hydrate[T any](ctx context.Context, backend storage.Backend, key string, log *slog.Logger) []T {
	data, err := backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("read collection, starting empty", "key", key, "error", err)
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("parse collection, starting empty", "key", key, "error", err)
		return nil
	}
	return items
}

// Ready is closed once hydration has completed.
func (s *Store) Ready() <-chan struct{} { return s.ready }

// Flush blocks until every pending persistence write has reached the backend.
func (s *Store) Flush() { s.persist.flush() }

// Close flushes pending writes and stops the persister.
func (s *Store) Close() { s.persist.stop() }

// --- Cart ---

func (s *Store) Cart() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartItem(nil), s.cart...)
}

func (s *Store) AddToCart(item model.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = addCartItem(s.cart, item)
	s.persistLocked(keyCart, s.cart)
}

func (s *Store) IncreaseQuantity(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = increaseQuantity(s.cart, id)
	s.persistLocked(keyCart, s.cart)
}

func (s *Store) DecreaseQuantity(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = decreaseQuantity(s.cart, id)
	s.persistLocked(keyCart, s.cart)
}

func (s *Store) RemoveFromCart(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = removeCartItem(s.cart, id)
	s.persistLocked(keyCart, s.cart)
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = make([]model.CartItem, 0)
	s.persistLocked(keyCart, s.cart)
}

// --- Wishlist ---

func (s *Store) Wishlist() []model.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.WishlistItem(nil), s.wishlist...)
}

func (s *Store) AddToWishlist(item model.WishlistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = addWishlistItem(s.wishlist, item)
	s.persistLocked(keyWishlist, s.wishlist)
}

func (s *Store) RemoveFromWishlist(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = removeWishlistItem(s.wishlist, id)
	s.persistLocked(keyWishlist, s.wishlist)
}

// MoveWishlistToCart deletes the item from the wishlist and merges it into
// the cart with quantity 1, as one operation under the lock. Absent ids are a
// silent no-op.
func (s *Store) MoveWishlistToCart(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *model.WishlistItem
	for i := range s.wishlist {
		if s.wishlist[i].ID == id {
			found = &s.wishlist[i]
			break
		}
	}
	if found == nil {
		return
	}
	s.cart = addCartItem(s.cart, model.CartItem{
		ID:    found.ID,
		Title: found.Title,
		Price: found.Price,
		Image: found.Image,
	})
	s.wishlist = removeWishlistItem(s.wishlist, id)
	s.persistLocked(keyCart, s.cart)
	s.persistLocked(keyWishlist, s.wishlist)
}

// --- Orders ---

// CreateOrder snapshots the cart into a new pending order and clears the
// cart. On an empty cart no order is created and ok is false.
func (s *Store) CreateOrder(customer model.Customer) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart) == 0 {
		return model.Order{}, false
	}

	items := append([]model.CartItem(nil), s.cart...)
	order := model.Order{
		OrderID:     uuid.NewString(),
		Items:       items,
		TotalAmount: pricing.Subtotal(items),
		Status:      model.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
		Customer:    customer,
	}
	s.orders = append(s.orders, order)
	s.cart = make([]model.CartItem, 0)
	s.persistLocked(keyOrders, s.orders)
	s.persistLocked(keyCart, s.cart)
	return cloneOrder(order), true
}

func (s *Store) GetOrder(orderID string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.OrderID == orderID {
			return cloneOrder(order), true
		}
	}
	return model.Order{}, false
}

// GetAllOrders returns the orders in insertion order.
func (s *Store) GetAllOrders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, cloneOrder(order))
	}
	return out
}

func (s *Store) UpdateOrderStatus(orderID string, status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].OrderID == orderID {
			s.orders[i].Status = status
			s.persistLocked(keyOrders, s.orders)
			return
		}
	}
}

func (s *Store) persistLocked(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("marshal collection", "key", key, "error", err)
		return
	}
	s.persist.enqueue(key, data)
}

func cloneOrder(order model.Order) model.Order {
	order.Items = append([]model.CartItem(nil), order.Items...)
	return order
}
