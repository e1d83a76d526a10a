package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mobile-hospital-storefront/internal/backend"
	"mobile-hospital-storefront/internal/checkout"
	"mobile-hospital-storefront/internal/content"
	"mobile-hospital-storefront/internal/domain"
)

type checkoutRequest struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
}

// submitCheckout starts a fresh checkout flow for the visitor's cart. Any
// previous attempt is abandoned first, so a failed draft can never be
// double-submitted.
func (h *handlers) submitCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "shippingAddress is required")
		return
	}

	v := currentVisitor(c)
	flow := v.checkout.Begin()
	submission, err := flow.Submit(c.Request.Context(), bearerToken(c), req.ShippingAddress)
	if err != nil {
		var (
			validationErr *checkout.ValidationError
			apiErr        *backend.APIError
		)
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondErr(c, http.StatusConflict, "Your cart is empty. Add some products to proceed with checkout.")
		case errors.As(err, &validationErr):
			respondErrData(c, http.StatusUnprocessableEntity, "Please fix the highlighted fields.", gin.H{
				"fields": validationErr.Fields,
			})
		case errors.Is(err, domain.ErrUnauthorized):
			respondErrData(c, http.StatusUnauthorized, "Please sign in to continue.", gin.H{"redirectTo": "/login"})
		case errors.As(err, &apiErr):
			respondErr(c, http.StatusBadRequest, apiErr.Error())
		default:
			h.logger.Printf("checkout submit: %v", err)
			respondErr(c, http.StatusBadGateway, "Could not connect to the server. Please try again.")
		}
		return
	}

	respondOK(c, http.StatusOK, submission)
}

// confirmPayment is the overlay's success callback: it verifies the payment
// proof and settles the flow.
func (h *handlers) confirmPayment(c *gin.Context) {
	var proof backend.PaymentProof
	if err := c.ShouldBindJSON(&proof); err != nil {
		respondErr(c, http.StatusBadRequest, "payment proof is required")
		return
	}

	v := currentVisitor(c)
	flow, ok := v.checkout.Flow(c.Param("flowID"))
	if !ok {
		respondErr(c, http.StatusGone, "This checkout attempt is no longer active.")
		return
	}

	order, err := flow.ConfirmPayment(c.Request.Context(), bearerToken(c), proof)
	if err != nil {
		var verificationErr *checkout.VerificationError
		switch {
		case errors.As(err, &verificationErr):
			respondErrData(c, http.StatusBadGateway, verificationErr.Failure.Message, gin.H{
				"paymentCaptured": verificationErr.Failure.PaymentCaptured,
			})
		case errors.Is(err, checkout.ErrFlowNotActive):
			respondErr(c, http.StatusGone, "This checkout attempt is no longer active.")
		default:
			respondErr(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"order":      order,
		"reference":  order.Reference(),
		"redirectTo": "/order-success",
	})
}

// getOrder serves one order from the visitor's history, plus the support
// inquiry link.
func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.backend.GetMyOrder(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondErr(c, http.StatusNotFound, "Order not found.")
		case errors.Is(err, domain.ErrUnauthorized):
			respondErrData(c, http.StatusUnauthorized, "Please sign in again to see your orders.", gin.H{"redirectTo": "/login"})
		default:
			h.logger.Printf("get order %s: %v", c.Param("id"), err)
			respondErr(c, http.StatusBadGateway, "Could not load the order. Please try again.")
		}
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"order":        order,
		"reference":    order.Reference(),
		"statusBadge":  order.Status.Badge(),
		"paymentBadge": order.PaymentStatus.Badge(),
		"inquiryUrl":   content.OrderInquiryLink(*order),
	})
}
