// Package grocery implements the storefront: cart, delivery address, checkout,
// order confirmation and profile, all persisted through a store.Store.
package grocery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foodpath"
	"foodpath/catalog"
	"foodpath/store"
)

type Storefront struct {
	store   *store.Store
	pricing Pricing
	now     func() time.Time
	newID   func() string
	logger  foodpath.ActivityLogger
	session string
}

type Option func(*Storefront)

func WithClock(now func() time.Time) Option {
	return func(s *Storefront) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Storefront) { s.newID = gen }
}

func WithActivityLogger(l foodpath.ActivityLogger) Option {
	return func(s *Storefront) { s.logger = l }
}

// WithSession tags activity records with the shopper's session id.
func WithSession(id string) Option {
	return func(s *Storefront) { s.session = id }
}

func NewStorefront(st *store.Store, pricing Pricing, opts ...Option) *Storefront {
	s := &Storefront{
		store:   st,
		pricing: pricing,
		now:     time.Now,
		newID:   newOrderID,
		logger:  foodpath.NewNoOpActivityLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storefront) Pricing() Pricing {
	return s.pricing
}

func (s *Storefront) Cart(ctx context.Context) ([]foodpath.CartItem, error) {
	return s.store.Cart(ctx)
}

func (s *Storefront) AddToCart(ctx context.Context, p catalog.Product) ([]foodpath.CartItem, error) {
	return s.mutateCart(ctx, "cart_add", map[string]any{"product_id": p.ID}, func(items []foodpath.CartItem) []foodpath.CartItem {
		return AddItem(items, p)
	})
}

func (s *Storefront) UpdateQuantity(ctx context.Context, id, quantity int) ([]foodpath.CartItem, error) {
	return s.mutateCart(ctx, "cart_update", map[string]any{"product_id": id, "quantity": quantity}, func(items []foodpath.CartItem) []foodpath.CartItem {
		return SetQuantity(items, id, quantity)
	})
}

func (s *Storefront) RemoveItem(ctx context.Context, id int) ([]foodpath.CartItem, error) {
	return s.mutateCart(ctx, "cart_remove", map[string]any{"product_id": id}, func(items []foodpath.CartItem) []foodpath.CartItem {
		return RemoveItem(items, id)
	})
}

func (s *Storefront) mutateCart(ctx context.Context, kind string, detail map[string]any, fn func([]foodpath.CartItem) []foodpath.CartItem) ([]foodpath.CartItem, error) {
	items, err := s.store.Cart(ctx)
	if err != nil {
		return nil, err
	}

	items = fn(items)
	if err := s.store.SetCart(ctx, items); err != nil {
		s.logActivity(kind, detail, err)
		return nil, err
	}

	detail["items"] = TotalItems(items)
	s.logActivity(kind, detail, nil)
	return items, nil
}

// Summary is the cart totals as shown on the cart and payment pages.
type Summary struct {
	Items       []foodpath.CartItem `json:"items"`
	TotalItems  int                 `json:"totalItems"`
	SubtotalUSD float64             `json:"subtotalUsd"`
	TotalUSD    float64             `json:"totalUsd"`
	Subtotal    string              `json:"subtotal"`
	DeliveryFee string              `json:"deliveryFee"`
	Total       string              `json:"total"`
}

func (s *Storefront) Summary(ctx context.Context) (Summary, error) {
	items, err := s.store.Cart(ctx)
	if err != nil {
		return Summary{}, err
	}
	return s.summarize(items), nil
}

func (s *Storefront) summarize(items []foodpath.CartItem) Summary {
	subtotal := Subtotal(items)
	total := s.pricing.Total(items)
	return Summary{
		Items:       items,
		TotalItems:  TotalItems(items),
		SubtotalUSD: subtotal,
		TotalUSD:    total,
		Subtotal:    s.pricing.Format(subtotal),
		DeliveryFee: FormatINR(s.pricing.DeliveryFeeINR),
		Total:       s.pricing.Format(total),
	}
}

// ProceedToPayment records the delivery address for the pending order.
func (s *Storefront) ProceedToPayment(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressRequired
	}

	items, err := s.store.Cart(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrEmptyCart
	}

	return s.store.SetDeliveryAddress(ctx, address)
}

// Card holds the online payment fields. They are checked for presence only.
type Card struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
	Name   string `json:"name"`
}

func (c Card) complete() bool {
	for _, f := range []string{c.Number, c.Expiry, c.CVV, c.Name} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

type PaymentRequest struct {
	Method string `json:"paymentMethod"`
	Card   Card   `json:"card"`
}

func (r PaymentRequest) Validate() error {
	switch r.Method {
	case "":
		return ErrPaymentMethodRequired
	case PaymentCOD:
		return nil
	case PaymentOnline:
		if !r.Card.complete() {
			return ErrCardDetailsRequired
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, r.Method)
	}
}

// Checkout places the order: it snapshots the cart and address, keeps the
// order as the latest one and clears the cart and address.
func (s *Storefront) Checkout(ctx context.Context, req PaymentRequest) (foodpath.Order, error) {
	items, err := s.store.Cart(ctx)
	if err != nil {
		return foodpath.Order{}, err
	}
	if len(items) == 0 {
		return foodpath.Order{}, ErrEmptyCart
	}

	address, err := s.store.DeliveryAddress(ctx)
	if err != nil {
		return foodpath.Order{}, err
	}
	if strings.TrimSpace(address) == "" {
		return foodpath.Order{}, ErrAddressRequired
	}

	if err := req.Validate(); err != nil {
		return foodpath.Order{}, err
	}

	order := foodpath.Order{
		Items:           items,
		DeliveryAddress: address,
		PaymentMethod:   req.Method,
		Total:           s.pricing.Format(s.pricing.Total(items)),
		OrderDate:       s.now().UTC(),
		OrderID:         s.newID(),
	}

	if err := s.store.SetOrderDetails(ctx, order); err != nil {
		s.logActivity("checkout", map[string]any{"order_id": order.OrderID}, err)
		return foodpath.Order{}, fmt.Errorf("save order: %w", err)
	}
	if err := s.store.ClearCheckout(ctx); err != nil {
		// order already saved, a stale cart is left behind
		slog.Warn("CHECKOUT: Failed to clear cart", "order_id", order.OrderID, "error", err)
	}

	s.logActivity("checkout", map[string]any{
		"order_id":       order.OrderID,
		"payment_method": order.PaymentMethod,
		"items":          TotalItems(items),
		"total":          order.Total,
	}, nil)
	slog.Info("CHECKOUT: Order placed", "order_id", order.OrderID, "total", order.Total)

	return order, nil
}

// LatestOrder returns the confirmation of the most recent order.
func (s *Storefront) LatestOrder(ctx context.Context) (Confirmation, error) {
	o, err := s.store.OrderDetails(ctx)
	if err != nil {
		return Confirmation{}, err
	}
	if o == nil {
		return Confirmation{}, ErrNoOrder
	}
	return NewConfirmation(*o, s.pricing), nil
}

func (s *Storefront) logActivity(kind string, detail map[string]any, err error) {
	a := foodpath.Activity{
		Kind:      kind,
		Session:   s.session,
		Timestamp: s.now(),
		Detail:    detail,
	}
	if err != nil {
		a.Error = err.Error()
	}
	if lerr := s.logger.LogActivity(a); lerr != nil {
		slog.Warn("ACTIVITY: Failed to log", "kind", kind, "error", lerr)
	}
}
