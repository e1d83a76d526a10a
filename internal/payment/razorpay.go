// Package payment builds the instantiation record for the hosted Razorpay
// overlay. The overlay itself is a black box: it is opened with these
// options in the browser and its success handler is the only way back into
// the checkout flow.
package payment

import (
	"errors"

	"mobile-hospital-storefront/internal/backend"
	"mobile-hospital-storefront/internal/domain"
)

const (
	businessName = "Mobile Hospital"
	purchaseNote = "Product Purchase"
	themeColor   = "#4f46e5"
)

// Prefill seeds the overlay's contact form.
type Prefill struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Theme styles the overlay to match the storefront.
type Theme struct {
	Color string `json:"color"`
}

// Overlay is the options object handed to the Razorpay constructor.
type Overlay struct {
	Key         string  `json:"key"`
	AmountPaise int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OrderID     string  `json:"order_id"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

// BuildOverlay assembles overlay options from the order-creation result and
// the shipping contact.
func BuildOverlay(session backend.CheckoutSession, address domain.ShippingAddress) Overlay {
	return Overlay{
		Key:         session.Key,
		AmountPaise: session.RazorpayOrder.AmountPaise,
		Currency:    session.RazorpayOrder.Currency,
		Name:        businessName,
		Description: purchaseNote,
		OrderID:     session.RazorpayOrder.ID,
		Prefill:     Prefill{Name: address.FullName, Contact: address.Phone},
		Theme:       Theme{Color: themeColor},
	}
}

// ValidateProof checks that the callback supplied all three proof fields.
func ValidateProof(p backend.PaymentProof) error {
	switch {
	case p.RazorpayOrderID == "":
		return errors.New("razorpay_order_id required")
	case p.RazorpayPaymentID == "":
		return errors.New("razorpay_payment_id required")
	case p.RazorpaySignature == "":
		return errors.New("razorpay_signature required")
	}
	return nil
}
