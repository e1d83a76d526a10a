// Package cart is the controller over the persisted cart record. The session
// store owns the data; an Aggregate is a transient view that applies
// mutations to an in-memory copy and writes the whole cart back before
// returning.
package cart

import (
	"errors"
	"sync"

	"mobile-hospital-storefront/internal/domain"
	"mobile-hospital-storefront/internal/session"
)

var (
	ErrNoProduct       = errors.New("product id required")
	ErrBadQuantity     = errors.New("quantity must be positive")
	ErrNegativePrice   = errors.New("unit price must not be negative")
	ErrMissingLineName = errors.New("line name required")
)

type Aggregate struct {
	mu    sync.Mutex
	store *session.Store
}

func New(store *session.Store) *Aggregate {
	return &Aggregate{store: store}
}

// Load reads the persisted cart. Absent or malformed storage yields an empty
// cart, never an error.
func (a *Aggregate) Load() domain.Cart {
	var c domain.Cart
	if !a.store.GetJSON(session.KeyCart, &c) {
		return domain.Cart{}
	}
	return c
}

// AddOrIncrement merges line into the cart: an existing line for the same
// product has the incoming quantity added to it, otherwise the line is
// appended. The updated cart is persisted before it is returned.
func (a *Aggregate) AddOrIncrement(line domain.CartLine) (domain.Cart, error) {
	switch {
	case line.ProductID == "":
		return nil, ErrNoProduct
	case line.Quantity < 1:
		return nil, ErrBadQuantity
	case line.UnitPricePaise < 0:
		return nil, ErrNegativePrice
	case line.Name == "":
		return nil, ErrMissingLineName
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	c := a.Load()
	merged := false
	for i := range c {
		if c[i].ProductID == line.ProductID {
			c[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c = append(c, line)
	}
	if err := a.store.SetJSON(session.KeyCart, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove filters out the line for productID. Removing an absent product is a
// no-op that still returns the current cart.
func (a *Aggregate) Remove(productID string) (domain.Cart, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c := a.Load()
	kept := c[:0]
	removed := false
	for _, line := range c {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return c, nil
	}
	if err := a.store.SetJSON(session.KeyCart, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear persists the empty cart. Called after the payment for an order has
// been verified.
func (a *Aggregate) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.SetJSON(session.KeyCart, domain.Cart{})
}

// Total is the derived sum over the current lines.
func (a *Aggregate) Total() int64 {
	return a.Load().Total()
}

// Count is the unit count shown on the navigation badge.
func (a *Aggregate) Count() int {
	return a.Load().Count()
}
