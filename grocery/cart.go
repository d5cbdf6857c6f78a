package grocery

import (
	"slices"

	"foodpath"
	"foodpath/catalog"
)

// AddItem puts one unit of p in the cart. A product already in the cart has
// its quantity bumped instead of getting a second entry.
func AddItem(items []foodpath.CartItem, p catalog.Product) []foodpath.CartItem {
	out := slices.Clone(items)
	for i := range out {
		if out[i].ID == p.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, foodpath.CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	})
}

// SetQuantity changes the quantity of id. Zero or less removes the entry.
func SetQuantity(items []foodpath.CartItem, id, quantity int) []foodpath.CartItem {
	if quantity <= 0 {
		return RemoveItem(items, id)
	}
	out := slices.Clone(items)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = quantity
		}
	}
	return out
}

func RemoveItem(items []foodpath.CartItem, id int) []foodpath.CartItem {
	return slices.DeleteFunc(slices.Clone(items), func(it foodpath.CartItem) bool {
		return it.ID == id
	})
}

// Subtotal sums price x quantity in USD.
func Subtotal(items []foodpath.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func TotalItems(items []foodpath.CartItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
