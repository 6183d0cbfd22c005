// Package lifecycle enforces the order and item state machines.
//
// Transitions are forward-only and may not skip states. Every call compares
// against the status the caller last observed, so a stale client gets a
// conflict instead of silently regressing the kitchen's view.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/models"
)

// orderNext maps each order status to its single legal successor.
// CANCELLED is handled separately: it is reachable from any non-terminal state.
var orderNext = map[models.OrderStatus]models.OrderStatus{
	models.OrderPending:   models.OrderConfirmed,
	models.OrderConfirmed: models.OrderPreparing,
	models.OrderPreparing: models.OrderReady,
	models.OrderReady:     models.OrderServed,
	models.OrderServed:    models.OrderCompleted,
}

var itemNext = map[models.ItemStatus]models.ItemStatus{
	models.ItemPending:   models.ItemPreparing,
	models.ItemPreparing: models.ItemReady,
	models.ItemReady:     models.ItemServed,
}

// itemRank orders the forward item states for the "at least" guards.
var itemRank = map[models.ItemStatus]int{
	models.ItemPending:   0,
	models.ItemPreparing: 1,
	models.ItemReady:     2,
	models.ItemServed:    3,
}

// OrderTerminal reports whether the status accepts no further transitions
func OrderTerminal(s models.OrderStatus) bool {
	return s == models.OrderCompleted || s == models.OrderCancelled
}

// ItemTerminal reports whether the item status accepts no further transitions
func ItemTerminal(s models.ItemStatus) bool {
	return s == models.ItemServed || s == models.ItemCancelled
}

// TransitionOrder advances the order to target, guarding against stale
// expectations, skipped states and items lagging behind. On success the
// order is updated in place and timestamped with now.
func TransitionOrder(o *models.Order, expected, target models.OrderStatus, now time.Time) error {
	if o.Status != expected {
		return fmt.Errorf("%w: order %s is %s, caller expected %s",
			apperr.ErrConflict, o.ID, o.Status, expected)
	}
	if OrderTerminal(o.Status) {
		return fmt.Errorf("%w: order %s is already %s", apperr.ErrInvalidTransition, o.ID, o.Status)
	}

	if target == models.OrderCancelled {
		cancelOrder(o, now)
		return nil
	}

	next, ok := orderNext[o.Status]
	if !ok || next != target {
		return fmt.Errorf("%w: order %s cannot go %s -> %s",
			apperr.ErrInvalidTransition, o.ID, o.Status, target)
	}

	if err := checkItemGuards(o, target); err != nil {
		return err
	}

	o.Status = target
	o.UpdatedAt = now
	if target == models.OrderCompleted {
		t := now
		o.CompletedAt = &t
	}
	return nil
}

// checkItemGuards rejects order advances that would outrun the items
func checkItemGuards(o *models.Order, target models.OrderStatus) error {
	switch target {
	case models.OrderPreparing:
		// Every item must at least be acknowledged before cooking starts.
		for _, item := range o.Items {
			if item.Status == models.ItemPending {
				return fmt.Errorf("%w: order %s has pending item %s",
					apperr.ErrInvalidTransition, o.ID, item.ID)
			}
		}
	case models.OrderReady:
		for _, item := range o.Items {
			if item.Status == models.ItemCancelled {
				continue
			}
			if itemRank[item.Status] < itemRank[models.ItemReady] {
				return fmt.Errorf("%w: order %s has item %s still %s",
					apperr.ErrInvalidTransition, o.ID, item.ID, item.Status)
			}
		}
	case models.OrderServed:
		for _, item := range o.Items {
			if item.Status == models.ItemCancelled {
				continue
			}
			if item.Status != models.ItemServed {
				return fmt.Errorf("%w: order %s has item %s still %s",
					apperr.ErrInvalidTransition, o.ID, item.ID, item.Status)
			}
		}
	}
	return nil
}

// cancelOrder cancels the order and every item that is not already terminal.
// Cancelling is unilateral for the whole order; served items stay served.
func cancelOrder(o *models.Order, now time.Time) {
	for i := range o.Items {
		if !ItemTerminal(o.Items[i].Status) {
			o.Items[i].Status = models.ItemCancelled
			o.Items[i].UpdatedAt = now
		}
	}
	o.Status = models.OrderCancelled
	o.UpdatedAt = now
	o.RecalculateTotal()
}

// TransitionItem advances one item of the order to target. The parent order
// must be in a state consistent with the move: items only progress after the
// order is confirmed, and never once the order is terminal. Cancelling one
// item does not cancel the order.
func TransitionItem(o *models.Order, itemID string, expected, target models.ItemStatus, now time.Time) error {
	idx := -1
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: order %s has no item %s", apperr.ErrNotFound, o.ID, itemID)
	}
	item := &o.Items[idx]

	if item.Status != expected {
		return fmt.Errorf("%w: item %s is %s, caller expected %s",
			apperr.ErrConflict, itemID, item.Status, expected)
	}
	if ItemTerminal(item.Status) {
		return fmt.Errorf("%w: item %s is already %s", apperr.ErrInvalidTransition, itemID, item.Status)
	}
	if OrderTerminal(o.Status) {
		return fmt.Errorf("%w: order %s is %s", apperr.ErrInvalidTransition, o.ID, o.Status)
	}

	if target == models.ItemCancelled {
		item.Status = models.ItemCancelled
		item.UpdatedAt = now
		o.UpdatedAt = now
		o.RecalculateTotal()
		return nil
	}

	// Items advance only once the order has been acknowledged.
	if o.Status == models.OrderPending {
		return fmt.Errorf("%w: order %s is still pending", apperr.ErrInvalidTransition, o.ID)
	}

	next, ok := itemNext[item.Status]
	if !ok || next != target {
		return fmt.Errorf("%w: item %s cannot go %s -> %s",
			apperr.ErrInvalidTransition, itemID, item.Status, target)
	}

	item.Status = target
	item.UpdatedAt = now
	o.UpdatedAt = now
	return nil
}
