package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/models"
)

func newOrder(status models.OrderStatus, itemStatuses ...models.ItemStatus) *models.Order {
	o := &models.Order{
		ID:          "ord-1",
		TableNumber: "T01",
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	for i, s := range itemStatuses {
		o.Items = append(o.Items, models.OrderItem{
			ID:         "item-" + string(rune('a'+i)),
			MenuItemID: "1",
			Quantity:   1,
			UnitPrice:  500,
			Status:     s,
		})
	}
	o.RecalculateTotal()
	return o
}

func TestTransitionOrder_FullHappyPath(t *testing.T) {
	now := time.Now().UTC()
	o := newOrder(models.OrderPending, models.ItemPending)

	steps := []models.OrderStatus{
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderReady,
		models.OrderServed,
		models.OrderCompleted,
	}

	// March the item alongside the order so the guards pass.
	itemSteps := map[models.OrderStatus]models.ItemStatus{
		models.OrderPreparing: models.ItemPreparing,
		models.OrderReady:     models.ItemReady,
		models.OrderServed:    models.ItemServed,
	}

	for _, target := range steps {
		if itemTarget, ok := itemSteps[target]; ok {
			if err := TransitionItem(o, o.Items[0].ID, o.Items[0].Status, itemTarget, now); err != nil {
				t.Fatalf("item step to %s failed: %v", itemTarget, err)
			}
		}
		expected := o.Status
		if err := TransitionOrder(o, expected, target, now); err != nil {
			t.Fatalf("order step %s -> %s failed: %v", expected, target, err)
		}
		if o.Status != target {
			t.Fatalf("status = %s, want %s", o.Status, target)
		}
	}

	if o.CompletedAt == nil {
		t.Error("CompletedAt not stamped on completion")
	}
}

func TestTransitionOrder_NoSkipping(t *testing.T) {
	now := time.Now().UTC()
	o := newOrder(models.OrderPending)

	err := TransitionOrder(o, models.OrderPending, models.OrderReady, now)
	if !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Errorf("PENDING -> READY error = %v, want ErrInvalidTransition", err)
	}
	if o.Status != models.OrderPending {
		t.Errorf("failed transition mutated status to %s", o.Status)
	}
}

func TestTransitionOrder_StaleExpectationConflicts(t *testing.T) {
	now := time.Now().UTC()
	o := newOrder(models.OrderConfirmed)

	err := TransitionOrder(o, models.OrderPending, models.OrderConfirmed, now)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("stale expected status error = %v, want ErrConflict", err)
	}
}

func TestTransitionOrder_CancelReachability(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		from    models.OrderStatus
		wantErr error
	}{
		{name: "from pending", from: models.OrderPending},
		{name: "from preparing", from: models.OrderPreparing},
		{name: "from served", from: models.OrderServed},
		{name: "from completed", from: models.OrderCompleted, wantErr: apperr.ErrInvalidTransition},
		{name: "from cancelled", from: models.OrderCancelled, wantErr: apperr.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrder(tt.from)
			err := TransitionOrder(o, tt.from, models.OrderCancelled, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if o.Status != models.OrderCancelled {
				t.Errorf("status = %s, want CANCELLED", o.Status)
			}
		})
	}
}

func TestTransitionOrder_CancelPropagatesToItems(t *testing.T) {
	now := time.Now().UTC()
	o := newOrder(models.OrderPreparing,
		models.ItemPreparing, models.ItemServed, models.ItemCancelled)

	if err := TransitionOrder(o, models.OrderPreparing, models.OrderCancelled, now); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if o.Items[0].Status != models.ItemCancelled {
		t.Errorf("in-flight item = %s, want CANCELLED", o.Items[0].Status)
	}
	// Terminal items are left alone.
	if o.Items[1].Status != models.ItemServed {
		t.Errorf("served item = %s, want SERVED", o.Items[1].Status)
	}
	if o.Items[2].Status != models.ItemCancelled {
		t.Errorf("cancelled item = %s, want CANCELLED", o.Items[2].Status)
	}
}

func TestTransitionOrder_PendingItemBlocksPreparing(t *testing.T) {
	now := time.Now().UTC()
	o := newOrder(models.OrderConfirmed, models.ItemPreparing, models.ItemPending)

	err := TransitionOrder(o, models.OrderConfirmed, models.OrderPreparing, now)
	if !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
}

func TestTransitionOrder_ServedRequiresAllItemsServed(t *testing.T) {
	now := time.Now().UTC()
	o := newOrder(models.OrderReady,
		models.ItemServed, models.ItemServed, models.ItemPreparing)

	err := TransitionOrder(o, models.OrderReady, models.OrderServed, now)
	if !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition while an item is preparing", err)
	}

	// Once the straggler is served the order can follow.
	o.Items[2].Status = models.ItemServed
	if err := TransitionOrder(o, models.OrderReady, models.OrderServed, now); err != nil {
		t.Errorf("unexpected error after all items served: %v", err)
	}
}

func TestTransitionOrder_ReadyIgnoresCancelledItems(t *testing.T) {
	now := time.Now().UTC()
	o := newOrder(models.OrderPreparing, models.ItemReady, models.ItemCancelled)

	if err := TransitionOrder(o, models.OrderPreparing, models.OrderReady, now); err != nil {
		t.Errorf("cancelled item must not block READY: %v", err)
	}
}

func TestTransitionItem(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid forward step", func(t *testing.T) {
		o := newOrder(models.OrderConfirmed, models.ItemPending)
		err := TransitionItem(o, o.Items[0].ID, models.ItemPending, models.ItemPreparing, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Items[0].Status != models.ItemPreparing {
			t.Errorf("item status = %s, want PREPARING", o.Items[0].Status)
		}
	})

	t.Run("skipping a state", func(t *testing.T) {
		o := newOrder(models.OrderConfirmed, models.ItemPending)
		err := TransitionItem(o, o.Items[0].ID, models.ItemPending, models.ItemReady, now)
		if !errors.Is(err, apperr.ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("item cannot advance while order pending", func(t *testing.T) {
		o := newOrder(models.OrderPending, models.ItemPending)
		err := TransitionItem(o, o.Items[0].ID, models.ItemPending, models.ItemPreparing, now)
		if !errors.Is(err, apperr.ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("stale expected status", func(t *testing.T) {
		o := newOrder(models.OrderConfirmed, models.ItemPreparing)
		err := TransitionItem(o, o.Items[0].ID, models.ItemPending, models.ItemPreparing, now)
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("error = %v, want ErrConflict", err)
		}
	})

	t.Run("cancel single item keeps order alive", func(t *testing.T) {
		o := newOrder(models.OrderPreparing, models.ItemPreparing, models.ItemPreparing)
		err := TransitionItem(o, o.Items[0].ID, models.ItemPreparing, models.ItemCancelled, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != models.OrderPreparing {
			t.Errorf("order status = %s, want PREPARING", o.Status)
		}
		if o.TotalAmount != 500 {
			t.Errorf("total after item cancel = %d, want 500", o.TotalAmount)
		}
	})

	t.Run("served item is terminal", func(t *testing.T) {
		o := newOrder(models.OrderServed, models.ItemServed)
		err := TransitionItem(o, o.Items[0].ID, models.ItemServed, models.ItemCancelled, now)
		if !errors.Is(err, apperr.ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		o := newOrder(models.OrderConfirmed, models.ItemPending)
		err := TransitionItem(o, "missing", models.ItemPending, models.ItemPreparing, now)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}
