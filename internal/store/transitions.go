package store

import "github.com/avelune/storefront/internal/model"

// Pure collection transitions: each takes a collection and returns a fresh
// slice, leaving the input untouched. The Store applies them under its lock
// and persists the result; tests exercise them with no backend at all.

// addCartItem merges into an existing entry (quantity +1) or appends the item
// with quantity forced to 1. Any quantity on the input is ignored.
func addCartItem(cart []model.CartItem, item model.CartItem) []model.CartItem {
	out := make([]model.CartItem, 0, len(cart)+1)
	merged := false
	for _, existing := range cart {
		if existing.ID == item.ID {
			existing.Quantity++
			merged = true
		}
		out = append(out, existing)
	}
	if !merged {
		item.Quantity = 1
		out = append(out, item)
	}
	return out
}

func increaseQuantity(cart []model.CartItem, id int64) []model.CartItem {
	out := make([]model.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ID == id {
			item.Quantity++
		}
		out = append(out, item)
	}
	return out
}

// decreaseQuantity floors at 1: an item never leaves the cart through this
// path, only through removeCartItem.
func decreaseQuantity(cart []model.CartItem, id int64) []model.CartItem {
	out := make([]model.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ID == id && item.Quantity > 1 {
			item.Quantity--
		}
		out = append(out, item)
	}
	return out
}

func removeCartItem(cart []model.CartItem, id int64) []model.CartItem {
	out := make([]model.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// addWishlistItem is idempotent: inserting an id already present is a no-op.
func addWishlistItem(wishlist []model.WishlistItem, item model.WishlistItem) []model.WishlistItem {
	for _, existing := range wishlist {
		if existing.ID == item.ID {
			return append([]model.WishlistItem(nil), wishlist...)
		}
	}
	out := make([]model.WishlistItem, 0, len(wishlist)+1)
	out = append(out, wishlist...)
	return append(out, item)
}

func removeWishlistItem(wishlist []model.WishlistItem, id int64) []model.WishlistItem {
	out := make([]model.WishlistItem, 0, len(wishlist))
	for _, item := range wishlist {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}
