package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "storefront_session"

	ctxVisitor  = "visitor"
	ctxToken    = "token"
	ctxIdentity = "identity"
)

type handlers struct {
	backend  backendAPI
	visitors *visitorRegistry
	logger   *log.Logger
}

// withVisitor binds the request to its session: an existing cookie selects
// the visitor's store and components, a missing one mints a fresh session.
func (h *handlers) withVisitor(ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = h.visitors.sessions.NewID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, maxAge, "/", "", false, true)
		}
		c.Set(ctxVisitor, h.visitors.visitor(id))
		c.Next()
	}
}

// requireIdentity enforces the protected-view contract: profile and
// credential must both be present, otherwise the caller is routed to login
// with the originally requested location preserved.
func (h *handlers) requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := currentVisitor(c)
		identity, token, ok := v.store.Identity()
		if !ok {
			respondErrData(c, http.StatusUnauthorized, "Please sign in to continue.", gin.H{
				"redirectTo": "/login",
				"from":       c.Request.URL.RequestURI(),
			})
			c.Abort()
			return
		}
		c.Set(ctxIdentity, identity)
		c.Set(ctxToken, token)
		c.Next()
	}
}

func currentVisitor(c *gin.Context) *visitor {
	return c.MustGet(ctxVisitor).(*visitor)
}

func bearerToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}
