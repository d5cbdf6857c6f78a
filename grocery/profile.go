package grocery

import (
	"context"
	"slices"
	"strings"

	"foodpath"
)

func (s *Storefront) Profile(ctx context.Context) (foodpath.Profile, error) {
	return s.store.Profile(ctx)
}

// AddAddress appends a trimmed address. Blank input leaves the profile as is.
func (s *Storefront) AddAddress(ctx context.Context, address string) (foodpath.Profile, error) {
	p, err := s.store.Profile(ctx)
	if err != nil {
		return foodpath.Profile{}, err
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return p, nil
	}

	p.Addresses = append(slices.Clone(p.Addresses), address)
	if err := s.store.SetProfile(ctx, p); err != nil {
		return foodpath.Profile{}, err
	}
	return p, nil
}

func (s *Storefront) RemoveAddress(ctx context.Context, index int) (foodpath.Profile, error) {
	p, err := s.store.Profile(ctx)
	if err != nil {
		return foodpath.Profile{}, err
	}
	if index < 0 || index >= len(p.Addresses) {
		return foodpath.Profile{}, ErrAddressNotFound
	}

	p.Addresses = slices.Delete(slices.Clone(p.Addresses), index, index+1)
	if err := s.store.SetProfile(ctx, p); err != nil {
		return foodpath.Profile{}, err
	}
	return p, nil
}

// ChangePassword validates a password change. There is no credential store
// behind the profile page, so success only means the input is acceptable.
func ChangePassword(current, next, confirm string) error {
	if next != confirm {
		return ErrPasswordMismatch
	}
	if current == "" || next == "" || confirm == "" {
		return ErrPasswordFieldsRequired
	}
	return nil
}

// UpdateUsername renames the profile. Blank names are ignored.
func (s *Storefront) UpdateUsername(ctx context.Context, name string) (foodpath.Profile, error) {
	p, err := s.store.Profile(ctx)
	if err != nil {
		return foodpath.Profile{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" || name == p.Username {
		return p, nil
	}

	p.Username = name
	if err := s.store.SetProfile(ctx, p); err != nil {
		return foodpath.Profile{}, err
	}
	return p, nil
}
