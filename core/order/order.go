package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is an order's lifecycle state as reported by the backend.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Message returns the customer-facing text for a status-change notification.
func (s Status) Message() string {
	switch s {
	case StatusPending:
		return "Your order is being prepared"
	case StatusProcessing:
		return "Your order is being processed"
	case StatusShipped:
		return "Your order has been shipped!"
	case StatusDelivered:
		return "Your order has been delivered!"
	case StatusCancelled:
		return "Your order has been cancelled"
	default:
		return "Your order status has been updated"
	}
}

// Payment methods accepted at checkout.
const (
	PaymentCard           = "card"
	PaymentCashOnDelivery = "cash_on_delivery"
)

// Item is one ordered product line in the backend's order shape.
type Item struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Order is the backend's order record.
type Order struct {
	OrderID       string          `json:"orderId,omitempty"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	OrderedItems  []Item          `json:"orderedItems"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        Status          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt,omitzero"`
	UpdatedAt     time.Time       `json:"updatedAt,omitzero"`
}

// UpdateParams is the admin-side patch for an order's status and notes.
type UpdateParams struct {
	Status Status `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}
