package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mobile-hospital-storefront/internal/backend"
	"mobile-hospital-storefront/internal/domain"
	"mobile-hospital-storefront/internal/session"
)

// backendAPI is the slice of the backend client the handlers use.
type backendAPI interface {
	ListProducts(ctx context.Context, p backend.ListParams) (*backend.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
	CreateOrder(ctx context.Context, token string, draft domain.OrderDraft) (*backend.CheckoutSession, error)
	VerifyPayment(ctx context.Context, token string, proof backend.PaymentProof) (*domain.Order, error)
	ListMyOrders(ctx context.Context, token string, p backend.HistoryParams) (*backend.OrderPage, error)
	GetMyOrder(ctx context.Context, token, id string) (*domain.Order, error)
}

// Deps carries everything the router needs.
type Deps struct {
	Sessions    *session.Manager
	Backend     backendAPI
	SessionDir  string
	SessionTTL  time.Duration
	CORSOrigins []string
}

// buildRouter wires routes for the storefront gateway.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Sessions == nil {
		return nil, errors.New("session manager required")
	}
	if deps.Backend == nil {
		return nil, errors.New("backend client required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.SessionDir))

	h := &handlers{
		backend:  deps.Backend,
		visitors: newVisitorRegistry(deps.Sessions, deps.Backend, deps.SessionTTL, logger),
		logger:   logger,
	}

	api := router.Group("/api")
	api.Use(h.withVisitor(deps.SessionTTL))
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.GET("/products/:id/whatsapp-inquiry", h.productInquiry)

		api.GET("/content/services", h.services)
		api.GET("/content/branches", h.branches)
		api.GET("/content/testimonials", h.testimonials)
		api.GET("/content/emi-plans", h.emiPlans)
		api.GET("/content/stats", h.stats)

		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
		api.GET("/me", h.me)

		api.GET("/cart", h.getCart)
		api.POST("/cart/items", h.addCartItem)
		api.DELETE("/cart/items/:id", h.removeCartItem)

		protected := api.Group("")
		protected.Use(h.requireIdentity())
		{
			protected.POST("/checkout", h.submitCheckout)
			protected.POST("/checkout/:flowID/payment", h.confirmPayment)
			protected.GET("/orders", h.listOrders)
			protected.GET("/orders/:id", h.getOrder)
		}
	}

	return router, nil
}
