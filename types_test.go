package foodpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderIsValid(t *testing.T) {
	valid := func() Order {
		return Order{
			Items:         []CartItem{{ID: 81, Name: "Whole Milk", Price: 3.49, Quantity: 2}},
			PaymentMethod: "online",
			Total:         "₹628.34",
			OrderID:       "ABC123XYZ",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Order)
		want   bool
	}{
		{"complete", func(*Order) {}, true},
		{"missing id", func(o *Order) { o.OrderID = "" }, false},
		{"no items", func(o *Order) { o.Items = nil }, false},
		{"zero quantity", func(o *Order) { o.Items[0].Quantity = 0 }, false},
		{"zero product id", func(o *Order) { o.Items[0].ID = 0 }, false},
		{"no payment method", func(o *Order) { o.PaymentMethod = "" }, false},
		{"no total", func(o *Order) { o.Total = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid()
			tt.mutate(&o)
			assert.Equal(t, tt.want, o.IsValid())
		})
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "John Doe", p.Username)
	assert.Len(t, p.Addresses, 2)

	p.Addresses[0] = "changed"
	assert.Equal(t, "123 Main Street, City, Country", DefaultProfile().Addresses[0])
}
