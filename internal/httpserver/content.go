package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mobile-hospital-storefront/internal/content"
)

func (h *handlers) services(c *gin.Context) {
	respondOK(c, http.StatusOK, content.Services())
}

func (h *handlers) branches(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"branches": content.Branches(),
		"whatsapp": content.WhatsAppLink(),
	})
}

func (h *handlers) testimonials(c *gin.Context) {
	respondOK(c, http.StatusOK, content.Testimonials())
}

func (h *handlers) emiPlans(c *gin.Context) {
	respondOK(c, http.StatusOK, content.EMIPlans())
}

func (h *handlers) stats(c *gin.Context) {
	respondOK(c, http.StatusOK, content.Stats())
}
