package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/cart"
	"github.com/sakuratei/order-system/internal/lifecycle"
	"github.com/sakuratei/order-system/internal/models"
	"github.com/sakuratei/order-system/internal/notify"
	"github.com/sakuratei/order-system/internal/repository"
)

// OrderService converts cart snapshots into persisted orders and drives
// their lifecycle.
type OrderService struct {
	orders   repository.OrderRepository
	menu     *MenuService
	tables   *TableService
	notifier notify.Notifier
	tokens   *TokenIndex
	log      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository, menu *MenuService,
	tables *TableService, notifier notify.Notifier, log *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		menu:     menu,
		tables:   tables,
		notifier: notifier,
		tokens:   NewTokenIndex(100_000),
		log:      log,
	}
}

// Submit converts a cart snapshot into a PENDING order. The submission
// token makes the call exactly-once: retrying with an already-accepted
// token returns the stored order instead of creating a duplicate. Unit
// prices are captured from the menu now; later menu price changes never
// reprice a submitted order.
func (s *OrderService) Submit(ctx context.Context, req models.SubmitOrderRequest) (*models.Order, error) {
	if req.SubmissionToken == "" {
		return nil, fmt.Errorf("%w: submissionToken is required", apperr.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, apperr.ErrEmptyCart
	}

	// Bloom says "definitely new" for the common case; a maybe-hit is
	// confirmed against the store before we trust it.
	if s.tokens.MaybeSeen(req.SubmissionToken) {
		if existing, err := s.orders.GetBySubmissionToken(ctx, req.SubmissionToken); err == nil {
			return existing, nil
		}
	}

	table, err := s.tables.Resolve(ctx, req.TableNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: table not resolved: %v", apperr.ErrValidation, err)
	}

	// Run the submitted lines through the cart engine so duplicates merge
	// under the same rules the client uses.
	snapshot := cart.New(table)
	for _, line := range req.Items {
		item, err := s.menu.GetItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		snapshot, err = cart.SelectItem(snapshot, *item, line.Quantity, line.SpecialInstructions)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              uuid.New().String(),
		SubmissionToken: req.SubmissionToken,
		TableNumber:     table.Table.Number,
		Status:          models.OrderPending,
		CustomerNotes:   req.CustomerNotes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, line := range snapshot.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ID:                  uuid.New().String(),
			MenuItemID:          line.MenuItemID,
			Name:                line.Name,
			Quantity:            line.Quantity,
			UnitPrice:           line.UnitPrice,
			SpecialInstructions: line.SpecialInstructions,
			Status:              models.ItemPending,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
	}
	order.TotalAmount = snapshot.Totals().TotalPrice

	stored, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.tokens.Add(req.SubmissionToken)

	// A replayed token hands back the original order; only log and notify
	// for the order we actually created.
	if stored.ID == order.ID {
		s.logStatus(ctx, stored.ID, string(models.OrderPending), "customer", "order submitted")
		s.publish(ctx, notify.StatusEvent{
			OrderID:     stored.ID,
			TableNumber: stored.TableNumber,
			NewStatus:   string(models.OrderPending),
			ChangedAt:   now,
		})
		s.log.Info("order created",
			"order_id", stored.ID,
			"table", stored.TableNumber,
			"items", len(stored.Items),
			"total", stored.TotalAmount,
		)
	}
	return stored, nil
}

// AttachItem adds one item to an order that has not been confirmed yet.
// A line with the same menu item and instructions merges into the existing
// pending item.
func (s *OrderService) AttachItem(ctx context.Context, orderID string, req models.AttachItemRequest) (*models.Order, error) {
	item, err := s.menu.GetItem(ctx, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", apperr.ErrValidation, req.Quantity)
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: menu item %q is not available", apperr.ErrValidation, item.Name)
	}

	now := time.Now().UTC()
	updated, err := s.orders.Update(ctx, orderID, func(o *models.Order) error {
		if o.Status != models.OrderPending {
			return fmt.Errorf("%w: order %s is %s, items can only be added while pending",
				apperr.ErrConflict, o.ID, o.Status)
		}

		for i := range o.Items {
			existing := &o.Items[i]
			if existing.MenuItemID == req.MenuItemID &&
				existing.SpecialInstructions == req.SpecialInstructions &&
				existing.Status == models.ItemPending {
				existing.Quantity += req.Quantity
				existing.UpdatedAt = now
				o.UpdatedAt = now
				o.RecalculateTotal()
				return nil
			}
		}

		o.Items = append(o.Items, models.OrderItem{
			ID:                  uuid.New().String(),
			MenuItemID:          item.ID,
			Name:                item.Name,
			Quantity:            req.Quantity,
			UnitPrice:           item.Price,
			SpecialInstructions: req.SpecialInstructions,
			Status:              models.ItemPending,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
		o.UpdatedAt = now
		o.RecalculateTotal()
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return updated, nil
}

// Transition moves the order to target, conditional on the status the
// caller last observed.
func (s *OrderService) Transition(ctx context.Context, orderID string,
	expected, target models.OrderStatus, changedBy string) (*models.Order, error) {

	now := time.Now().UTC()
	updated, err := s.orders.Update(ctx, orderID, func(o *models.Order) error {
		return lifecycle.TransitionOrder(o, expected, target, now)
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.logStatus(ctx, orderID, string(target), changedBy,
		fmt.Sprintf("order %s -> %s", expected, target))
	s.publish(ctx, notify.StatusEvent{
		OrderID:     updated.ID,
		TableNumber: updated.TableNumber,
		OldStatus:   string(expected),
		NewStatus:   string(target),
		ChangedAt:   now,
	})
	s.applyTableEffect(ctx, updated.TableNumber, target)

	return updated, nil
}

// TransitionItem moves a single item to target under the same CAS rules
func (s *OrderService) TransitionItem(ctx context.Context, orderID, itemID string,
	expected, target models.ItemStatus, changedBy string) (*models.Order, error) {

	now := time.Now().UTC()
	updated, err := s.orders.Update(ctx, orderID, func(o *models.Order) error {
		return lifecycle.TransitionItem(o, itemID, expected, target, now)
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, notify.StatusEvent{
		OrderID:     updated.ID,
		TableNumber: updated.TableNumber,
		ItemID:      itemID,
		OldStatus:   string(expected),
		NewStatus:   string(target),
		ChangedAt:   now,
	})
	return updated, nil
}

// applyTableEffect propagates order milestones to the table: a confirmed
// order occupies the table, a completed or cancelled one releases it.
func (s *OrderService) applyTableEffect(ctx context.Context, tableNumber string, status models.OrderStatus) {
	var tableStatus models.TableStatus
	switch status {
	case models.OrderConfirmed:
		tableStatus = models.TableOccupied
	case models.OrderCompleted, models.OrderCancelled:
		tableStatus = models.TableAvailable
	default:
		return
	}
	if err := s.tables.SetTableStatus(ctx, tableNumber, tableStatus); err != nil {
		s.log.Error("failed to update table status",
			"table", tableNumber, "status", tableStatus, "error", err)
	}
}

// GetOrder returns one order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return o, nil
}

// ListOrders returns every order, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// ActiveOrders returns orders still in flight
func (s *OrderService) ActiveOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListActive(ctx)
}

// KitchenOrders returns the orders the kitchen board displays
func (s *OrderService) KitchenOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListKitchen(ctx)
}

// OrdersByTable returns the orders of one table
func (s *OrderService) OrdersByTable(ctx context.Context, tableNumber string) ([]models.Order, error) {
	return s.orders.ListByTable(ctx, tableNumber)
}

// TodaysOrders returns the orders created since midnight UTC
func (s *OrderService) TodaysOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListToday(ctx)
}

// History returns the status change log of one order
func (s *OrderService) History(ctx context.Context, orderID string) ([]models.StatusChange, error) {
	entries, err := s.orders.StatusHistory(ctx, orderID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return entries, nil
}

// logStatus appends to the status history; a logging failure never fails
// the transition that already happened.
func (s *OrderService) logStatus(ctx context.Context, orderID, status, changedBy, notes string) {
	err := s.orders.AppendStatusLog(ctx, models.StatusChange{
		OrderID:   orderID,
		Status:    status,
		ChangedBy: changedBy,
		ChangedAt: time.Now().UTC(),
		Notes:     notes,
	})
	if err != nil {
		s.log.Error("failed to append status log", "order_id", orderID, "error", err)
	}
}

// publish sends the event to the dashboards; delivery failures are logged,
// the transition stands.
func (s *OrderService) publish(ctx context.Context, event notify.StatusEvent) {
	if err := s.notifier.StatusChanged(ctx, event); err != nil {
		s.log.Error("failed to publish status event",
			"order_id", event.OrderID, "error", err)
	}
}

func mapRepoError(err error) error {
	if err == repository.ErrOrderNotFound {
		return fmt.Errorf("%w: order", apperr.ErrNotFound)
	}
	return err
}
