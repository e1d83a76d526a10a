package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the server-owned fulfilment state of an order. This system
// only ever reads it.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status in display order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}
}

// ParseOrderStatus accepts a filter value from a query string. The empty
// string means "all orders".
func ParseOrderStatus(s string) (OrderStatus, error) {
	if s == "" {
		return "", nil
	}
	for _, st := range OrderStatuses() {
		if s == string(st) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Label returns the capitalized display name.
func (s OrderStatus) Label() string {
	switch s {
	case OrderProcessing:
		return "Processing"
	case OrderShipped:
		return "Shipped"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	default:
		return "Pending"
	}
}

// Badge returns the CSS badge classes for the status. Unknown values render
// as pending.
func (s OrderStatus) Badge() string {
	switch s {
	case OrderProcessing:
		return "bg-blue-500/20 text-blue-400 border-blue-500/30"
	case OrderShipped:
		return "bg-purple-500/20 text-purple-400 border-purple-500/30"
	case OrderDelivered:
		return "bg-green-500/20 text-green-400 border-green-500/30"
	case OrderCancelled:
		return "bg-red-500/20 text-red-400 border-red-500/30"
	default:
		return "bg-yellow-500/20 text-yellow-400 border-yellow-500/30"
	}
}

// PaymentStatus is the server-owned payment state of an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Badge returns the CSS badge classes for the payment status.
func (s PaymentStatus) Badge() string {
	switch s {
	case PaymentPaid:
		return "bg-green-500/20 text-green-400"
	case PaymentFailed:
		return "bg-red-500/20 text-red-400"
	default:
		return "bg-yellow-500/20 text-yellow-400"
	}
}

// OrderProduct is the product snapshot embedded in an order item.
type OrderProduct struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	PricePaise int64    `json:"price"`
	Images     []string `json:"images,omitempty"`
}

// OrderItem is one purchased product with the quantity and the unit price at
// purchase time.
type OrderItem struct {
	Product    OrderProduct `json:"product"`
	Quantity   int          `json:"quantity"`
	PricePaise int64        `json:"price"`
}

// Order is the server's record of a placed order. All fields are read-only
// from this system's perspective; totalAmount is server-computed.
type Order struct {
	ID               string          `json:"_id"`
	Items            []OrderItem     `json:"items"`
	TotalAmountPaise int64           `json:"totalAmount"`
	Status           OrderStatus     `json:"status"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	CustomerName     string          `json:"customerName"`
	CustomerPhone    string          `json:"customerPhone"`
	ShippingAddress  ShippingAddress `json:"shippingAddress"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Reference is the short order reference shown to customers, derived from the
// last eight characters of the id.
func (o Order) Reference() string {
	id := o.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "#" + strings.ToUpper(id)
}

// DraftItem is one cart line reduced to what order creation needs.
type DraftItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// OrderDraft is the order-creation request body. Customer name and phone are
// derived from the shipping address.
type OrderDraft struct {
	Items           []DraftItem     `json:"items"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}
