// Package catalog is the product-listing view component. It owns the
// loading/empty/populated/error presentation state for one visitor and
// guarantees that the result shown always belongs to the most recently
// started fetch, regardless of network completion order.
package catalog

import (
	"context"
	"sync"

	"mobile-hospital-storefront/internal/backend"
	"mobile-hospital-storefront/internal/domain"
)

// Phase is the presentation state of the listing.
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseEmpty     Phase = "empty"
	PhasePopulated Phase = "populated"
	PhaseError     Phase = "error"
)

// Params selects a catalog page.
type Params struct {
	Search   string          `json:"search"`
	Category domain.Category `json:"category"`
	Page     int             `json:"page"`
}

// View is what the storefront renders for the listing.
type View struct {
	Phase      Phase            `json:"phase"`
	Params     Params           `json:"params"`
	Products   []domain.Product `json:"products"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Message    string           `json:"message,omitempty"`
}

type lister interface {
	ListProducts(ctx context.Context, p backend.ListParams) (*backend.ProductPage, error)
}

// Query serializes fetches for one visitor's listing. Last request started
// wins: a response arriving for an older request is discarded.
type Query struct {
	mu      sync.Mutex
	backend lister
	seq     uint64
	view    View
}

func NewQuery(b lister) *Query {
	return &Query{backend: b, view: View{Phase: PhaseLoading}}
}

// View returns what should currently be on screen.
func (q *Query) View() View {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.view
}

// Fetch starts a fresh query for p and returns the resulting view. If a newer
// Fetch starts while this one is in flight, this result is dropped and the
// newer request's view is returned instead. Failures surface as the error
// phase; nothing escapes the component.
func (q *Query) Fetch(ctx context.Context, p Params) View {
	if p.Page < 1 {
		p.Page = 1
	}

	q.mu.Lock()
	q.seq++
	started := q.seq
	q.view = View{Phase: PhaseLoading, Params: p}
	q.mu.Unlock()

	page, err := q.backend.ListProducts(ctx, backend.ListParams{
		Search:   p.Search,
		Category: p.Category,
		Page:     p.Page,
	})

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.seq != started {
		// Superseded by a newer request.
		return q.view
	}

	switch {
	case err != nil:
		q.view = View{Phase: PhaseError, Params: p, Message: "Could not load products. Please try again."}
	case len(page.Products) == 0:
		q.view = View{Phase: PhaseEmpty, Params: p, Page: page.Page, TotalPages: page.TotalPages}
	default:
		q.view = View{
			Phase:      PhasePopulated,
			Params:     p,
			Products:   page.Products,
			Total:      page.Total,
			Page:       page.Page,
			TotalPages: page.TotalPages,
		}
	}
	return q.view
}
