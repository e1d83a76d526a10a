// Package backend is the HTTP client for the external mobile-hospital REST
// API. Every interesting capability of the storefront lives behind this
// boundary: catalog, authentication, order persistence and payment
// verification.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mobile-hospital-storefront/internal/domain"
)

// APIError is a business failure: the backend answered with success:false
// and a message meant for the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend rejected request (status %d)", e.Status)
}

// envelope is the response wrapper every backend endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// New builds a Client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ListParams filters a catalog page.
type ListParams struct {
	Search   string
	Category domain.Category
	Page     int
	Limit    int
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products   []domain.Product `json:"products"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// ListProducts fetches a paginated, filterable product listing.
func (c *Client) ListProducts(ctx context.Context, p ListParams) (*ProductPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	q.Set("limit", strconv.Itoa(defaultLimit(p.Limit)))
	if p.Category != "" {
		q.Set("category", string(p.Category))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}

	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/products?"+q.Encode(), "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// LoginResult carries the identity pair issued by the backend.
type LoginResult struct {
	User        domain.Identity `json:"user"`
	AccessToken string          `json:"accessToken"`
}

// Login exchanges credentials for a profile and bearer token. Token issuance
// is entirely the backend's business; this is a pass-through.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, &APIError{Message: "login response missing access token"}
	}
	return &res, nil
}

// RazorpayOrder is the payment-session handle returned by order creation.
type RazorpayOrder struct {
	ID          string `json:"id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
}

// CheckoutSession is the order-creation result: the pending order plus
// everything the payment overlay needs.
type CheckoutSession struct {
	Order         domain.Order  `json:"order"`
	RazorpayOrder RazorpayOrder `json:"razorpayOrder"`
	Key           string        `json:"key"`
}

// CreateOrder submits an order draft under the bearer token.
func (c *Client) CreateOrder(ctx context.Context, token string, draft domain.OrderDraft) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/orders", token, draft, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// PaymentProof is the callback payload the payment overlay hands back after
// capturing a payment.
type PaymentProof struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyPayment submits the payment proof for server-side signature
// verification and returns the confirmed order.
func (c *Client) VerifyPayment(ctx context.Context, token string, proof PaymentProof) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders/verify-payment", token, proof, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// HistoryParams filters the caller's order history.
type HistoryParams struct {
	Page   int
	Limit  int
	Status domain.OrderStatus
}

// OrderPage is one page of the caller's order history.
type OrderPage struct {
	Orders     []domain.Order `json:"orders"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// ListMyOrders fetches the authenticated user's orders.
func (c *Client) ListMyOrders(ctx context.Context, token string, p HistoryParams) (*OrderPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	q.Set("limit", strconv.Itoa(defaultLimit(p.Limit)))
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}

	var page OrderPage
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders?"+q.Encode(), token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMyOrder fetches one of the authenticated user's orders by id.
func (c *Client) GetMyOrder(ctx context.Context, token, id string) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders/"+url.PathEscape(id), token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// do issues one request and decodes the envelope into out. Transport and
// decode failures wrap into a connectivity error; success:false becomes an
// *APIError; 401 maps to domain.ErrUnauthorized; 404 to domain.ErrNotFound.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if c.logger != nil {
			c.logger.Printf("backend %s %s failed: status=%d message=%q", method, path, resp.StatusCode, env.Message)
		}
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}
