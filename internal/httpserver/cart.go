package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mobile-hospital-storefront/internal/cart"
	"mobile-hospital-storefront/internal/domain"
)

// cartView is the cart payload with its derived totals.
type cartView struct {
	Items      domain.Cart `json:"items"`
	TotalPaise int64       `json:"total"`
	Count      int         `json:"count"`
}

func viewOf(c domain.Cart) cartView {
	if c == nil {
		c = domain.Cart{}
	}
	return cartView{Items: c, TotalPaise: c.Total(), Count: c.Count()}
}

func (h *handlers) getCart(c *gin.Context) {
	respondOK(c, http.StatusOK, viewOf(currentVisitor(c).cart.Load()))
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// addCartItem snapshots the product server-side and merges it into the cart.
// The stored name, price and image always come from the catalog, never from
// the request body.
func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.backend.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "Product not found.")
			return
		}
		h.logger.Printf("add to cart %s: %v", req.ProductID, err)
		respondErr(c, http.StatusBadGateway, "Could not load the product. Please try again.")
		return
	}
	if product.Stock < 1 {
		respondErr(c, http.StatusConflict, "This product is out of stock.")
		return
	}

	updated, err := currentVisitor(c).cart.AddOrIncrement(domain.CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPricePaise: product.PricePaise,
		Quantity:       req.Quantity,
		ImageURL:       product.FirstImage(),
	})
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrBadQuantity):
			respondErr(c, http.StatusBadRequest, "Quantity must be at least 1.")
		default:
			h.logger.Printf("persist cart: %v", err)
			respondErr(c, http.StatusInternalServerError, "Could not update your cart. Please try again.")
		}
		return
	}
	respondOK(c, http.StatusOK, viewOf(updated))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	updated, err := currentVisitor(c).cart.Remove(c.Param("id"))
	if err != nil {
		h.logger.Printf("persist cart: %v", err)
		respondErr(c, http.StatusInternalServerError, "Could not update your cart. Please try again.")
		return
	}
	respondOK(c, http.StatusOK, viewOf(updated))
}
