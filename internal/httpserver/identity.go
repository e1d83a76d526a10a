package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mobile-hospital-storefront/internal/backend"
	"mobile-hospital-storefront/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login proxies the credential exchange to the backend and persists the
// resulting identity pair in one write.
func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var apiErr *backend.APIError
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			respondErr(c, http.StatusUnauthorized, "Invalid email or password.")
		case errors.As(err, &apiErr):
			respondErr(c, http.StatusUnauthorized, apiErr.Error())
		default:
			h.logger.Printf("login: %v", err)
			respondErr(c, http.StatusBadGateway, "Could not connect to the server. Please try again.")
		}
		return
	}

	v := currentVisitor(c)
	if err := v.store.SetIdentity(result.User, result.AccessToken); err != nil {
		h.logger.Printf("persist identity: %v", err)
		respondErr(c, http.StatusInternalServerError, "Could not save your session. Please try again.")
		return
	}

	respondOK(c, http.StatusOK, v.shell.snapshot())
}

// logout drops the identity pair. The cart survives, matching the original
// storefront where only user and accessToken are removed on sign-out.
// ?forget=true discards the whole session, cart included.
func (h *handlers) logout(c *gin.Context) {
	v := currentVisitor(c)
	if c.Query("forget") == "true" {
		h.visitors.drop(v.id)
		c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
		respondOK(c, http.StatusOK, shellView{})
		return
	}
	if err := v.store.ClearIdentity(); err != nil {
		h.logger.Printf("clear identity: %v", err)
		respondErr(c, http.StatusInternalServerError, "Could not sign you out. Please try again.")
		return
	}
	respondOK(c, http.StatusOK, v.shell.snapshot())
}

// me serves the navigation shell's data.
func (h *handlers) me(c *gin.Context) {
	respondOK(c, http.StatusOK, currentVisitor(c).shell.snapshot())
}
