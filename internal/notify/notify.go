// Package notify broadcasts order status changes to the kitchen and admin
// dashboards.
package notify

import (
	"context"
	"time"
)

// StatusEvent describes one successful lifecycle transition
type StatusEvent struct {
	OrderID     string    `json:"order_id"`
	TableNumber string    `json:"table_number"`
	ItemID      string    `json:"item_id,omitempty"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedAt   time.Time `json:"changed_at"`
}

// Notifier publishes status events. Implementations must tolerate being
// called concurrently.
type Notifier interface {
	StatusChanged(ctx context.Context, event StatusEvent) error
}

// Noop discards every event. Used when no broker is configured.
type Noop struct{}

func (Noop) StatusChanged(ctx context.Context, event StatusEvent) error { return nil }
