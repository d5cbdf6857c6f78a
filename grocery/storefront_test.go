package grocery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodpath"
	"foodpath/store"
)

var orderTime = time.Date(2024, time.May, 6, 10, 30, 0, 0, time.UTC)

func newTestStorefront(t *testing.T, opts ...Option) (*Storefront, *store.MemoryState) {
	t.Helper()
	mem := store.NewMemoryState()
	opts = append([]Option{
		WithClock(func() time.Time { return orderTime }),
		WithIDGenerator(func() string { return "ABC123XYZ" }),
	}, opts...)
	return NewStorefront(store.New(mem), DefaultPricing(), opts...), mem
}

func TestStorefrontCartFlow(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	_, err := sf.AddToCart(ctx, wholeMilk)
	require.NoError(t, err)
	items, err := sf.AddToCart(ctx, wholeMilk)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	_, err = sf.AddToCart(ctx, chips)
	require.NoError(t, err)

	items, err = sf.UpdateQuantity(ctx, 81, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, cartIDs(items))

	items, err = sf.RemoveItem(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	stored, err := sf.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestStorefrontSummary(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	_, err := sf.AddToCart(ctx, wholeMilk)
	require.NoError(t, err)

	sum, err := sf.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalItems)
	assert.Equal(t, "₹289.67", sum.Subtotal)
	assert.Equal(t, "₹49.00", sum.DeliveryFee)
	assert.Equal(t, "₹338.67", sum.Total)
}

func TestProceedToPayment(t *testing.T) {
	ctx := context.Background()
	sf, mem := newTestStorefront(t)

	assert.ErrorIs(t, sf.ProceedToPayment(ctx, "   "), ErrAddressRequired)
	assert.ErrorIs(t, sf.ProceedToPayment(ctx, "12 MG Road"), ErrEmptyCart)

	_, err := sf.AddToCart(ctx, chips)
	require.NoError(t, err)
	require.NoError(t, sf.ProceedToPayment(ctx, "  12 MG Road, Bengaluru "))

	raw, err := mem.Load(ctx, store.KeyDeliveryAddress)
	require.NoError(t, err)
	assert.JSONEq(t, `"12 MG Road, Bengaluru"`, string(raw))
}

func TestPaymentRequestValidate(t *testing.T) {
	card := Card{Number: "4111111111111111", Expiry: "12/30", CVV: "123", Name: "A Shopper"}

	tests := []struct {
		name string
		req  PaymentRequest
		want error
	}{
		{name: "no method", req: PaymentRequest{}, want: ErrPaymentMethodRequired},
		{name: "cash on delivery needs no card", req: PaymentRequest{Method: PaymentCOD}, want: nil},
		{name: "online with card", req: PaymentRequest{Method: PaymentOnline, Card: card}, want: nil},
		{name: "online missing cvv", req: PaymentRequest{Method: PaymentOnline, Card: Card{Number: "4111", Expiry: "12/30", Name: "A"}}, want: ErrCardDetailsRequired},
		{name: "online blank name", req: PaymentRequest{Method: PaymentOnline, Card: Card{Number: "4111", Expiry: "12/30", CVV: "1", Name: "  "}}, want: ErrCardDetailsRequired},
		{name: "unknown method", req: PaymentRequest{Method: "barter"}, want: ErrUnknownPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	activity := foodpath.NewFileActivityLogger(&buf)
	sf, mem := newTestStorefront(t, WithActivityLogger(activity), WithSession("s-1"))

	_, err := sf.Checkout(ctx, PaymentRequest{Method: PaymentCOD})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = sf.AddToCart(ctx, wholeMilk)
	require.NoError(t, err)
	_, err = sf.AddToCart(ctx, wholeMilk)
	require.NoError(t, err)

	_, err = sf.Checkout(ctx, PaymentRequest{Method: PaymentCOD})
	assert.ErrorIs(t, err, ErrAddressRequired)

	require.NoError(t, sf.ProceedToPayment(ctx, "12 MG Road"))

	_, err = sf.Checkout(ctx, PaymentRequest{})
	assert.ErrorIs(t, err, ErrPaymentMethodRequired)

	order, err := sf.Checkout(ctx, PaymentRequest{Method: PaymentCOD})
	require.NoError(t, err)
	assert.Equal(t, "ABC123XYZ", order.OrderID)
	assert.Equal(t, "12 MG Road", order.DeliveryAddress)
	assert.Equal(t, "₹628.34", order.Total)
	assert.Equal(t, orderTime, order.OrderDate)
	assert.True(t, order.IsValid())

	cart, err := sf.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
	assert.Equal(t, []string{store.KeyOrderDetails}, mem.Keys())

	raw, err := mem.Load(ctx, store.KeyOrderDetails)
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, "2024-05-06T10:30:00Z", stored["orderDate"])
	assert.Equal(t, "cod", stored["paymentMethod"])

	require.NoError(t, activity.Flush())
	assert.Contains(t, buf.String(), `"kind": "checkout"`)
	assert.Contains(t, buf.String(), `"session": "s-1"`)
}

func TestCheckoutStorageFailure(t *testing.T) {
	sf := NewStorefront(store.New(store.NewMemoryStateWithError(errors.New("disk gone"))), DefaultPricing())

	_, err := sf.Checkout(context.Background(), PaymentRequest{Method: PaymentCOD})
	assert.ErrorContains(t, err, "disk gone")
	assert.False(t, IsValidation(err))
}

func TestLatestOrder(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	_, err := sf.LatestOrder(ctx)
	assert.ErrorIs(t, err, ErrNoOrder)

	_, err = sf.AddToCart(ctx, chips)
	require.NoError(t, err)
	require.NoError(t, sf.ProceedToPayment(ctx, "12 MG Road"))
	_, err = sf.Checkout(ctx, PaymentRequest{Method: PaymentOnline, Card: Card{Number: "4111", Expiry: "01/30", CVV: "999", Name: "A"}})
	require.NoError(t, err)

	conf, err := sf.LatestOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Online Payment", conf.PaymentMethod)
	assert.Equal(t, "Thursday, 9 May 2024", conf.EstimatedDelivery)
	assert.Equal(t, "Standard delivery within 2-3 business days", conf.DeliveryNote)
	assert.Equal(t, "₹248.17", conf.Subtotal)
	assert.Equal(t, 1, conf.TotalItems)
	require.Len(t, conf.Timeline, 4)
	assert.True(t, conf.Timeline[0].Done)
	assert.False(t, conf.Timeline[3].Done)
}

func cartIDs(items []foodpath.CartItem) []int {
	ids := make([]int, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
