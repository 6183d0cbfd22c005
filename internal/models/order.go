package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle stage of a whole order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderServed    OrderStatus = "SERVED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ItemStatus represents the lifecycle stage of a single ordered item
type ItemStatus string

const (
	ItemPending   ItemStatus = "PENDING"
	ItemPreparing ItemStatus = "PREPARING"
	ItemReady     ItemStatus = "READY"
	ItemServed    ItemStatus = "SERVED"
	ItemCancelled ItemStatus = "CANCELLED"
)

// ParseOrderStatus validates a status string from a transition request
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderServed, OrderCompleted, OrderCancelled:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("unknown order status: %s", s)
	}
}

// ParseItemStatus validates an item status string
func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case ItemPending, ItemPreparing, ItemReady, ItemServed, ItemCancelled:
		return ItemStatus(s), nil
	default:
		return "", fmt.Errorf("unknown item status: %s", s)
	}
}

// OrderItem is one line of a persisted order. The unit price is captured at
// submission time so historical orders never change value when the menu does.
type OrderItem struct {
	ID                  string     `json:"id"`
	MenuItemID          string     `json:"menuItemId"`
	Name                string     `json:"name"`
	Quantity            int        `json:"quantity"`
	UnitPrice           int64      `json:"unitPrice"`
	SpecialInstructions string     `json:"specialInstructions,omitempty"`
	Status              ItemStatus `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// Subtotal returns the line total in yen.
func (i OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Order is a persisted customer order. Status is mutated only through
// lifecycle transitions.
type Order struct {
	ID              string      `json:"id"`
	SubmissionToken string      `json:"-"`
	TableNumber     string      `json:"tableNumber"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
	CustomerNotes   string      `json:"customerNotes,omitempty"`
	TotalAmount     int64       `json:"totalAmount"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
}

// RecalculateTotal recomputes the order total from its items. Cancelled
// items do not count toward the bill.
func (o *Order) RecalculateTotal() {
	var total int64
	for _, item := range o.Items {
		if item.Status == ItemCancelled {
			continue
		}
		total += item.Subtotal()
	}
	o.TotalAmount = total
}

// StatusChange is one entry in an order's status history log
type StatusChange struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
	Notes     string    `json:"notes,omitempty"`
}

// SubmitLine is one cart line in an order submission
type SubmitLine struct {
	MenuItemID          string `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// SubmitOrderRequest carries a cart snapshot to the order endpoint. The
// submission token is client-generated and makes the submit exactly-once:
// retrying with the same token returns the already-created order.
type SubmitOrderRequest struct {
	SubmissionToken string       `json:"submissionToken"`
	TableNumber     string       `json:"tableNumber"`
	CustomerNotes   string       `json:"customerNotes,omitempty"`
	Items           []SubmitLine `json:"items"`
}

// AttachItemRequest adds one more item to an existing pending order
type AttachItemRequest struct {
	MenuItemID          string `json:"menuItemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// TransitionRequest names the status the caller believes the order is in.
// A stale expected status is rejected instead of silently overwriting.
type TransitionRequest struct {
	ExpectedStatus string `json:"expectedStatus"`
}

// ItemStatusRequest sets the status of one order item
type ItemStatusRequest struct {
	Status         string `json:"status"`
	ExpectedStatus string `json:"expectedStatus"`
}
