package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mobile-hospital-storefront/internal/domain"
	"mobile-hospital-storefront/internal/orders"
)

// listOrders drives the order-history view component for this visitor.
func (h *handlers) listOrders(c *gin.Context) {
	status, err := domain.ParseOrderStatus(c.Query("status"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	view := currentVisitor(c).orders.Fetch(c.Request.Context(), bearerToken(c), orders.Params{
		Page:   page,
		Status: status,
	})
	if view.Phase == orders.PhaseUnauthorized {
		respondErrData(c, http.StatusUnauthorized, view.Message, gin.H{"redirectTo": "/login"})
		return
	}
	respondOK(c, http.StatusOK, view)
}
