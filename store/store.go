package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"foodpath"
)

// Keys shared by the storefront and the recipe site.
const (
	KeyCart            = "cart"
	KeyDeliveryAddress = "deliveryAddress"
	KeyOrderDetails    = "orderDetails"
	KeySavedRecipes    = "savedRecipes"
	KeyProfile         = "profile"
)

// Store gives typed access to the well-known keys of a State.
//
// A missing key or a value that is not valid JSON for its type reads back as
// the key's default (empty list, empty string, nil order, default profile).
// Only backend failures are returned as errors.
type Store struct {
	state State
}

func New(state State) *Store {
	return &Store{state: state}
}

// read decodes key into v. It reports false when the default should be used.
func (s *Store) read(ctx context.Context, key string, v any) (bool, error) {
	b, err := s.state.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		slog.Warn("STORE: Malformed value, using default", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.state.Save(ctx, key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) remove(ctx context.Context, key string) error {
	if err := s.state.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Cart(ctx context.Context) ([]foodpath.CartItem, error) {
	var items []foodpath.CartItem
	ok, err := s.read(ctx, KeyCart, &items)
	if err != nil || !ok || items == nil {
		return []foodpath.CartItem{}, err
	}
	return items, nil
}

// SetCart overwrites the cart. An empty cart removes the key.
func (s *Store) SetCart(ctx context.Context, items []foodpath.CartItem) error {
	if len(items) == 0 {
		return s.remove(ctx, KeyCart)
	}
	return s.write(ctx, KeyCart, items)
}

func (s *Store) DeliveryAddress(ctx context.Context) (string, error) {
	var addr string
	if _, err := s.read(ctx, KeyDeliveryAddress, &addr); err != nil {
		return "", err
	}
	return addr, nil
}

func (s *Store) SetDeliveryAddress(ctx context.Context, addr string) error {
	return s.write(ctx, KeyDeliveryAddress, addr)
}

// OrderDetails returns the most recent order, or nil when none was placed.
func (s *Store) OrderDetails(ctx context.Context) (*foodpath.Order, error) {
	var o foodpath.Order
	ok, err := s.read(ctx, KeyOrderDetails, &o)
	if err != nil || !ok {
		return nil, err
	}
	return &o, nil
}

func (s *Store) SetOrderDetails(ctx context.Context, o foodpath.Order) error {
	return s.write(ctx, KeyOrderDetails, o)
}

func (s *Store) SavedRecipes(ctx context.Context) ([]foodpath.SavedRecipe, error) {
	var recipes []foodpath.SavedRecipe
	ok, err := s.read(ctx, KeySavedRecipes, &recipes)
	if err != nil || !ok || recipes == nil {
		return []foodpath.SavedRecipe{}, err
	}
	return recipes, nil
}

func (s *Store) SetSavedRecipes(ctx context.Context, recipes []foodpath.SavedRecipe) error {
	if recipes == nil {
		recipes = []foodpath.SavedRecipe{}
	}
	return s.write(ctx, KeySavedRecipes, recipes)
}

func (s *Store) Profile(ctx context.Context) (foodpath.Profile, error) {
	var p foodpath.Profile
	ok, err := s.read(ctx, KeyProfile, &p)
	if err != nil {
		return foodpath.Profile{}, err
	}
	if !ok {
		return foodpath.DefaultProfile(), nil
	}
	return p, nil
}

func (s *Store) SetProfile(ctx context.Context, p foodpath.Profile) error {
	return s.write(ctx, KeyProfile, p)
}

// ClearCheckout drops the cart and delivery address once an order is placed.
func (s *Store) ClearCheckout(ctx context.Context) error {
	return errors.Join(
		s.remove(ctx, KeyCart),
		s.remove(ctx, KeyDeliveryAddress),
	)
}
