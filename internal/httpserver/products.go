package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mobile-hospital-storefront/internal/catalog"
	"mobile-hospital-storefront/internal/content"
	"mobile-hospital-storefront/internal/domain"
)

// listProducts drives the catalog view component for this visitor.
func (h *handlers) listProducts(c *gin.Context) {
	category, err := domain.ParseCategory(c.Query("category"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	view := currentVisitor(c).catalog.Fetch(c.Request.Context(), catalog.Params{
		Search:   c.Query("search"),
		Category: category,
		Page:     page,
	})
	respondOK(c, http.StatusOK, view)
}

func (h *handlers) getProduct(c *gin.Context) {
	product, err := h.backend.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "Product not found.")
			return
		}
		h.logger.Printf("get product %s: %v", c.Param("id"), err)
		respondErr(c, http.StatusBadGateway, "Could not load the product. Please try again.")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"product":       product,
		"badge":         product.Category.Badge(),
		"categoryLabel": product.Category.Label(),
	})
}

// productInquiry builds the WhatsApp link pre-filled for the product.
func (h *handlers) productInquiry(c *gin.Context) {
	product, err := h.backend.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "Product not found.")
			return
		}
		respondErr(c, http.StatusBadGateway, "Could not load the product. Please try again.")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"url": content.ProductInquiryLink(*product)})
}
