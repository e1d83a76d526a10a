package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobile-hospital-storefront/internal/backend"
	"mobile-hospital-storefront/internal/domain"
	"mobile-hospital-storefront/internal/session"
)

type stubBackend struct {
	products map[string]*domain.Product

	loginResult *backend.LoginResult
	loginErr    error

	createSession *backend.CheckoutSession
	createErr     error

	verifyOrder *domain.Order
	verifyErr   error

	orderPage *backend.OrderPage
	listErr   error

	myOrder    *domain.Order
	myOrderErr error
}

func (s *stubBackend) ListProducts(_ context.Context, _ backend.ListParams) (*backend.ProductPage, error) {
	page := &backend.ProductPage{Page: 1, TotalPages: 1}
	for _, p := range s.products {
		page.Products = append(page.Products, *p)
	}
	page.Total = len(page.Products)
	return page, nil
}

func (s *stubBackend) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubBackend) Login(_ context.Context, _, _ string) (*backend.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubBackend) CreateOrder(_ context.Context, _ string, _ domain.OrderDraft) (*backend.CheckoutSession, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createSession, nil
}

func (s *stubBackend) VerifyPayment(_ context.Context, _ string, _ backend.PaymentProof) (*domain.Order, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verifyOrder, nil
}

func (s *stubBackend) ListMyOrders(_ context.Context, _ string, _ backend.HistoryParams) (*backend.OrderPage, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.orderPage != nil {
		return s.orderPage, nil
	}
	return &backend.OrderPage{Page: 1, TotalPages: 1}, nil
}

func (s *stubBackend) GetMyOrder(_ context.Context, _, _ string) (*domain.Order, error) {
	if s.myOrderErr != nil {
		return nil, s.myOrderErr
	}
	return s.myOrder, nil
}

// testClient drives the router as one browser would: it keeps the session
// cookie across requests.
type testClient struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newTestClient(t *testing.T, stub *stubBackend) *testClient {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	router, err := buildRouter(logger, Deps{
		Sessions:   session.NewManager(t.TempDir(), time.Hour),
		Backend:    stub,
		SessionDir: t.TempDir(),
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)
	return &testClient{t: t, router: router}
}

func (tc *testClient) do(method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	tc.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(tc.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}

	rec := httptest.NewRecorder()
	tc.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			tc.cookie = c
		}
	}

	var env apiResponse
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

// dataMap re-decodes the envelope's data into a map for field assertions.
func dataMap(t *testing.T, env apiResponse) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func stockedProduct() *domain.Product {
	return &domain.Product{
		ID:         "p1",
		Name:       "Tempered Glass Cover",
		PricePaise: 49900,
		Category:   domain.CategoryCover,
		Images:     []string{"https://cdn.example.com/p1.jpg"},
		Stock:      5,
	}
}

func validCheckoutBody() map[string]interface{} {
	return map[string]interface{}{
		"shippingAddress": map[string]string{
			"fullName":   "Farhan Khan",
			"phone":      "9876543210",
			"houseNo":    "12A",
			"street":     "Bada Chauraha",
			"city":       "Biswan",
			"district":   "Sitapur",
			"state":      "Uttar Pradesh",
			"postalCode": "261201",
		},
	}
}

func (tc *testClient) signIn(stub *stubBackend) {
	tc.t.Helper()
	stub.loginResult = &backend.LoginResult{
		User:        domain.Identity{Name: "Farhan"},
		AccessToken: "tok-123",
	}
	rec, _ := tc.do(http.MethodPost, "/api/login", map[string]string{
		"email":    "farhan@example.com",
		"password": "hunter2",
	})
	require.Equal(tc.t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	tc := newTestClient(t, &stubBackend{})
	rec, _ := tc.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionCookieMintedOnFirstRequest(t *testing.T) {
	tc := newTestClient(t, &stubBackend{})
	rec, _ := tc.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, tc.cookie)
	assert.True(t, tc.cookie.HttpOnly)

	// The same cookie keeps selecting the same session.
	first := tc.cookie.Value
	tc.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, first, tc.cookie.Value)
}

func TestProtectedRouteRedirectsToLogin(t *testing.T) {
	tc := newTestClient(t, &stubBackend{})
	rec, env := tc.do(http.MethodGet, "/api/orders", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	data := dataMap(t, env)
	assert.Equal(t, "/login", data["redirectTo"])
	assert.Equal(t, "/api/orders", data["from"])
}

func TestLoginThenMe(t *testing.T) {
	stub := &stubBackend{}
	tc := newTestClient(t, stub)
	tc.signIn(stub)

	rec, env := tc.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, env)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, "Farhan", data["user"].(map[string]interface{})["name"])
}

func TestLoginRejectedCredentials(t *testing.T) {
	stub := &stubBackend{loginErr: domain.ErrUnauthorized}
	tc := newTestClient(t, stub)

	rec, env := tc.do(http.MethodPost, "/api/login", map[string]string{
		"email":    "farhan@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password.", env.Message)
}

func TestLogoutKeepsCart(t *testing.T) {
	stub := &stubBackend{products: map[string]*domain.Product{"p1": stockedProduct()}}
	tc := newTestClient(t, stub)
	tc.signIn(stub)

	rec, _ := tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := tc.do(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, env)
	assert.Equal(t, false, data["authenticated"])
	assert.Equal(t, float64(1), data["cartCount"])
}

func TestCartAddMergeAndRemove(t *testing.T) {
	stub := &stubBackend{products: map[string]*domain.Product{"p1": stockedProduct()}}
	tc := newTestClient(t, stub)

	rec, env := tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, env)
	assert.Equal(t, float64(2), data["count"])
	assert.Equal(t, float64(99800), data["total"])

	// Adding the same product again merges quantities.
	_, env = tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "p1"})
	data = dataMap(t, env)
	assert.Equal(t, float64(3), data["count"])

	rec, env = tc.do(http.MethodDelete, "/api/cart/items/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = dataMap(t, env)
	assert.Equal(t, float64(0), data["count"])
}

func TestCartAddUnknownProduct(t *testing.T) {
	tc := newTestClient(t, &stubBackend{products: map[string]*domain.Product{}})
	rec, env := tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found.", env.Message)
}

func TestCartAddOutOfStock(t *testing.T) {
	depleted := stockedProduct()
	depleted.Stock = 0
	tc := newTestClient(t, &stubBackend{products: map[string]*domain.Product{"p1": depleted}})

	rec, env := tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "p1"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "This product is out of stock.", env.Message)
}

func TestCheckoutEmptyCart(t *testing.T) {
	stub := &stubBackend{}
	tc := newTestClient(t, stub)
	tc.signIn(stub)

	rec, env := tc.do(http.MethodPost, "/api/checkout", validCheckoutBody())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, env.Message, "cart is empty")
}

func TestCheckoutAddressValidation(t *testing.T) {
	stub := &stubBackend{products: map[string]*domain.Product{"p1": stockedProduct()}}
	tc := newTestClient(t, stub)
	tc.signIn(stub)
	tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "p1"})

	body := validCheckoutBody()
	body["shippingAddress"].(map[string]string)["postalCode"] = "12"
	rec, env := tc.do(http.MethodPost, "/api/checkout", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := dataMap(t, env)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "postalCode")
}

func TestCheckoutAndPaymentHappyPath(t *testing.T) {
	stub := &stubBackend{
		products: map[string]*domain.Product{"p1": stockedProduct()},
		createSession: &backend.CheckoutSession{
			Order:         domain.Order{ID: "order-1"},
			RazorpayOrder: backend.RazorpayOrder{ID: "rzp-1", AmountPaise: 49900, Currency: "INR"},
			Key:           "rzp_test_key",
		},
		verifyOrder: &domain.Order{ID: "order-1", PaymentStatus: domain.PaymentPaid},
	}
	tc := newTestClient(t, stub)
	tc.signIn(stub)
	tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "p1"})

	rec, env := tc.do(http.MethodPost, "/api/checkout", validCheckoutBody())
	require.Equal(t, http.StatusOK, rec.Code)
	submission := dataMap(t, env)
	flowID := submission["flowId"].(string)
	require.NotEmpty(t, flowID)
	overlay := submission["overlay"].(map[string]interface{})
	assert.Equal(t, "Mobile Hospital", overlay["name"])
	assert.Equal(t, "rzp-1", overlay["order_id"])

	rec, env = tc.do(http.MethodPost, "/api/checkout/"+flowID+"/payment", map[string]string{
		"razorpay_order_id":   "rzp-1",
		"razorpay_payment_id": "pay-1",
		"razorpay_signature":  "sig",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	result := dataMap(t, env)
	assert.Equal(t, "/order-success", result["redirectTo"])
	assert.NotEmpty(t, result["reference"])

	// The verified order emptied the cart.
	_, env = tc.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, float64(0), dataMap(t, env)["count"])
}

func TestPaymentCallbackForStaleFlow(t *testing.T) {
	stub := &stubBackend{}
	tc := newTestClient(t, stub)
	tc.signIn(stub)

	rec, _ := tc.do(http.MethodPost, "/api/checkout/no-such-flow/payment", map[string]string{
		"razorpay_order_id":   "rzp-1",
		"razorpay_payment_id": "pay-1",
		"razorpay_signature":  "sig",
	})
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestPaymentVerificationFailureFlagsCapture(t *testing.T) {
	stub := &stubBackend{
		products: map[string]*domain.Product{"p1": stockedProduct()},
		createSession: &backend.CheckoutSession{
			Order:         domain.Order{ID: "order-1"},
			RazorpayOrder: backend.RazorpayOrder{ID: "rzp-1"},
			Key:           "rzp_test_key",
		},
		verifyErr: &backend.APIError{Status: 400, Message: "Invalid payment signature"},
	}
	tc := newTestClient(t, stub)
	tc.signIn(stub)
	tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "p1"})

	_, env := tc.do(http.MethodPost, "/api/checkout", validCheckoutBody())
	flowID := dataMap(t, env)["flowId"].(string)

	rec, env := tc.do(http.MethodPost, "/api/checkout/"+flowID+"/payment", map[string]string{
		"razorpay_order_id":   "rzp-1",
		"razorpay_payment_id": "pay-1",
		"razorpay_signature":  "bad",
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, true, dataMap(t, env)["paymentCaptured"])

	// The unverified cart is preserved for support follow-up.
	_, env = tc.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, float64(1), dataMap(t, env)["count"])
}

func TestOrdersExpiredTokenAsksToSignInAgain(t *testing.T) {
	stub := &stubBackend{listErr: domain.ErrUnauthorized}
	tc := newTestClient(t, stub)
	tc.signIn(stub)

	rec, env := tc.do(http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", dataMap(t, env)["redirectTo"])
}

func TestListProductsRejectsUnknownCategory(t *testing.T) {
	tc := newTestClient(t, &stubBackend{})
	rec, _ := tc.do(http.MethodGet, "/api/products?category=spaceships", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProductsPopulated(t *testing.T) {
	tc := newTestClient(t, &stubBackend{products: map[string]*domain.Product{"p1": stockedProduct()}})
	rec, env := tc.do(http.MethodGet, "/api/products?category=cover&search=glass", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, env)
	assert.Equal(t, "populated", data["phase"])
	assert.Equal(t, float64(1), data["total"])
}
