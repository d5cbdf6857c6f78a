package foodpath

import (
	"context"
	"time"
)

// Source loads a raw JSON document, e.g. a catalog file or object.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// CartItem is a product reference with a quantity, as kept under the "cart" key.
type CartItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Order is the snapshot written under "orderDetails" at checkout.
type Order struct {
	Items           []CartItem `json:"items"`
	DeliveryAddress string     `json:"deliveryAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
	Total           string     `json:"total"`
	OrderDate       time.Time  `json:"orderDate"`
	OrderID         string     `json:"orderId"`
}

// SavedRecipe is the recipe snapshot kept under "savedRecipes".
type SavedRecipe struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Time        string `json:"time"`
}

// Profile is the storefront user profile.
type Profile struct {
	Username  string   `json:"username"`
	Addresses []string `json:"addresses"`
}

// DefaultProfile mirrors the profile page's initial state.
func DefaultProfile() Profile {
	return Profile{
		Username: "John Doe",
		Addresses: []string{
			"123 Main Street, City, Country",
			"456 Second Ave, City, Country",
		},
	}
}

// IsValid checks that every cart entry has an id and a positive quantity.
func (o *Order) IsValid() bool {
	if o.OrderID == "" || len(o.Items) == 0 {
		return false
	}

	for _, it := range o.Items {
		if it.ID == 0 || it.Quantity <= 0 {
			return false
		}
	}

	return o.PaymentMethod != "" && o.Total != ""
}
