// Package checkout drives the order → payment → verification sequence for
// one checkout attempt. States are strictly sequential: no two network calls
// of a flow are ever in flight at once, and nothing here retries
// automatically; every retry is the user re-submitting.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"mobile-hospital-storefront/internal/backend"
	"mobile-hospital-storefront/internal/domain"
	"mobile-hospital-storefront/internal/payment"
)

var (
	// ErrEmptyCart short-circuits a flow before it starts; no state is
	// reachable from an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrFlowNotActive rejects operations on a superseded or finished flow,
	// including late payment callbacks for abandoned attempts.
	ErrFlowNotActive = errors.New("checkout flow is not active")
)

// ValidationError carries field-level address problems. The order request is
// never issued when validation fails.
type ValidationError struct {
	Fields domain.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid shipping address (%d field(s))", len(e.Fields))
}

// Failure describes a terminal failed flow. PaymentCaptured marks the one
// case that must never be conflated with an ordinary order failure: the
// overlay reported a capture but this client could not verify it, so money
// may have moved.
type Failure struct {
	Message         string `json:"message"`
	PaymentCaptured bool   `json:"paymentCaptured"`
}

type orderAPI interface {
	CreateOrder(ctx context.Context, token string, draft domain.OrderDraft) (*backend.CheckoutSession, error)
	VerifyPayment(ctx context.Context, token string, proof backend.PaymentProof) (*domain.Order, error)
}

type cartAggregate interface {
	Load() domain.Cart
	Clear() error
}

// Flow is a single checkout attempt. A failed flow is never reused; the user
// re-submits and gets a fresh one, which also guarantees a corrected
// resubmission can never double-send a failed draft.
type Flow struct {
	mu        sync.Mutex
	id        string
	state     State
	abandoned bool

	backend orderAPI
	cart    cartAggregate
	logger  *log.Logger

	session          *backend.CheckoutSession
	address          domain.ShippingAddress
	confirmedOrderID string
	failure          *Failure
}

func newFlow(b orderAPI, cart cartAggregate, logger *log.Logger) *Flow {
	return &Flow{
		id:      uuid.NewString(),
		state:   StateIdle,
		backend: b,
		cart:    cart,
		logger:  logger,
	}
}

// ID identifies the flow to the payment callback route.
func (f *Flow) ID() string {
	return f.id
}

// State returns the flow's current position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Failure returns the terminal failure, if the flow failed.
func (f *Flow) Failure() *Failure {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}

// ConfirmedOrderID returns the verified order id once the flow succeeded.
func (f *Flow) ConfirmedOrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmedOrderID
}

// Submission is what a successful order creation hands back to the browser:
// everything the payment overlay needs, plus the ids to report back.
type Submission struct {
	FlowID  string          `json:"flowId"`
	OrderID string          `json:"orderId"`
	Overlay payment.Overlay `json:"overlay"`
}

// Submit validates the address and creates the order. On success the flow
// waits in awaiting_payment for the overlay callback; it has no timeout of
// its own. On failure the flow is terminal and the caller starts over.
func (f *Flow) Submit(ctx context.Context, token string, address domain.ShippingAddress) (*Submission, error) {
	lines := f.cart.Load()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if fieldErrs := address.Validate(); fieldErrs != nil {
		// Client-side gate only; the backend validates again.
		return nil, &ValidationError{Fields: fieldErrs}
	}
	address = address.Normalized()

	if err := f.transition(StateIdle, StateSubmittingOrder); err != nil {
		return nil, err
	}

	items := make([]domain.DraftItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.DraftItem{Product: line.ProductID, Quantity: line.Quantity})
	}
	draft := domain.OrderDraft{
		Items:           items,
		CustomerName:    address.FullName,
		CustomerPhone:   address.Phone,
		ShippingAddress: address,
	}

	session, err := f.backend.CreateOrder(ctx, token, draft)
	if err != nil {
		msg := "Could not connect to the server. Please try again."
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Error()
		}
		f.fail(Failure{Message: msg})
		return nil, fmt.Errorf("create order: %w", err)
	}

	f.mu.Lock()
	if f.abandoned || !CanTransition(f.state, StateAwaitingPayment) {
		f.mu.Unlock()
		return nil, ErrFlowNotActive
	}
	f.state = StateAwaitingPayment
	f.session = session
	f.address = address
	f.mu.Unlock()

	return &Submission{
		FlowID:  f.id,
		OrderID: session.Order.ID,
		Overlay: payment.BuildOverlay(*session, address),
	}, nil
}

// VerificationError reports a failed or unverifiable payment verification.
type VerificationError struct {
	Failure Failure
}

func (e *VerificationError) Error() string {
	return e.Failure.Message
}

// ConfirmPayment is the sole entry out of awaiting_payment, driven by the
// overlay's success callback. A verified payment clears the cart; a
// verification failure is terminal and flagged as captured-but-unverified.
func (f *Flow) ConfirmPayment(ctx context.Context, token string, proof backend.PaymentProof) (*domain.Order, error) {
	if err := payment.ValidateProof(proof); err != nil {
		return nil, err
	}
	if err := f.transition(StateAwaitingPayment, StateVerifyingPayment); err != nil {
		return nil, err
	}

	order, err := f.backend.VerifyPayment(ctx, token, proof)
	if err != nil {
		msg := "Payment received but verification failed. Please contact support."
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message + ". Please contact support."
		}
		failure := Failure{Message: msg, PaymentCaptured: true}
		f.fail(failure)
		return nil, &VerificationError{Failure: failure}
	}

	if err := f.cart.Clear(); err != nil && f.logger != nil {
		// The order is confirmed either way; an unclean cart only risks a
		// stale badge until the next mutation.
		f.logger.Printf("clear cart after order %s: %v", order.ID, err)
	}

	f.mu.Lock()
	f.state = StateSucceeded
	f.confirmedOrderID = order.ID
	f.mu.Unlock()

	return order, nil
}

// transition moves from → to under the transition relation, refusing when the
// flow was abandoned or sits in another state.
func (f *Flow) transition(from, to State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.abandoned {
		return ErrFlowNotActive
	}
	if f.state != from || !CanTransition(from, to) {
		return ErrFlowNotActive
	}
	f.state = to
	return nil
}

func (f *Flow) fail(failure Failure) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateFailed
	f.failure = &failure
}

// abandon makes every future transition fail. Called when a newer flow
// replaces this one.
func (f *Flow) abandon() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abandoned = true
}
