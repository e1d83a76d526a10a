// Package orders is the order-history view component: the same pagination
// and supersession contract as the catalog listing, scoped to the
// authenticated user and filterable by fulfilment status.
package orders

import (
	"context"
	"errors"
	"sync"

	"mobile-hospital-storefront/internal/backend"
	"mobile-hospital-storefront/internal/domain"
)

// Phase is the presentation state of the history listing.
type Phase string

const (
	PhaseLoading      Phase = "loading"
	PhaseEmpty        Phase = "empty"
	PhasePopulated    Phase = "populated"
	PhaseError        Phase = "error"
	PhaseUnauthorized Phase = "unauthorized"
)

// Params selects a history page.
type Params struct {
	Page   int                `json:"page"`
	Status domain.OrderStatus `json:"status"`
}

// View is what the storefront renders for the history listing. An
// unauthorized view routes the visitor to re-authentication instead of
// showing an empty list.
type View struct {
	Phase      Phase          `json:"phase"`
	Params     Params         `json:"params"`
	Orders     []domain.Order `json:"orders"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Message    string         `json:"message,omitempty"`
}

type lister interface {
	ListMyOrders(ctx context.Context, token string, p backend.HistoryParams) (*backend.OrderPage, error)
}

// Query serializes history fetches for one visitor. Last request started
// wins.
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

// Fetch starts a fresh history query under token and returns the resulting
// view, unless a newer Fetch superseded it first.
func (q *Query) Fetch(ctx context.Context, token string, p Params) View {
	if p.Page < 1 {
		p.Page = 1
	}

	q.mu.Lock()
	q.seq++
	started := q.seq
	q.view = View{Phase: PhaseLoading, Params: p}
	q.mu.Unlock()

	page, err := q.backend.ListMyOrders(ctx, token, backend.HistoryParams{
		Page:   p.Page,
		Status: p.Status,
	})

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.seq != started {
		return q.view
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		q.view = View{Phase: PhaseUnauthorized, Params: p, Message: "Please sign in again to see your orders."}
	case err != nil:
		var apiErr *backend.APIError
		msg := "Could not connect to the server. Please try again."
		if errors.As(err, &apiErr) {
			msg = apiErr.Error()
		}
		q.view = View{Phase: PhaseError, Params: p, Message: msg}
	case len(page.Orders) == 0:
		q.view = View{Phase: PhaseEmpty, Params: p, Page: page.Page, TotalPages: page.TotalPages}
	default:
		q.view = View{
			Phase:      PhasePopulated,
			Params:     p,
			Orders:     page.Orders,
			Total:      page.Total,
			Page:       page.Page,
			TotalPages: page.TotalPages,
		}
	}
	return q.view
}
