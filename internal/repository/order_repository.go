package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sakuratei/order-system/internal/models"
)

// OrderRepository is the persistence contract for orders. Update runs its
// mutation atomically against the stored order, so concurrent staff actions
// serialize on the store instead of racing read-modify-write cycles.
type OrderRepository interface {
	// Create persists a new order. If an order with the same submission
	// token already exists, the stored order is returned unchanged; the
	// caller observes an exactly-once submit.
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetBySubmissionToken(ctx context.Context, token string) (*models.Order, error)
	Update(ctx context.Context, id string, mutate func(*models.Order) error) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListActive(ctx context.Context) ([]models.Order, error)
	ListKitchen(ctx context.Context) ([]models.Order, error)
	ListByTable(ctx context.Context, tableNumber string) ([]models.Order, error)
	ListToday(ctx context.Context) ([]models.Order, error)
	AppendStatusLog(ctx context.Context, entry models.StatusChange) error
	StatusHistory(ctx context.Context, orderID string) ([]models.StatusChange, error)
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage
type InMemoryOrderRepository struct {
	mu      sync.RWMutex
	orders  map[string]*models.Order
	byToken map[string]string // submission token -> order ID
	history map[string][]models.StatusChange
}

// NewInMemoryOrderRepository creates an empty in-memory order repository
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders:  make(map[string]*models.Order),
		byToken: make(map[string]string),
		history: make(map[string][]models.StatusChange),
	}
}

func (r *InMemoryOrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.SubmissionToken != "" {
		if id, seen := r.byToken[o.SubmissionToken]; seen {
			return copyOrder(r.orders[id]), nil
		}
	}

	stored := copyOrder(o)
	r.orders[stored.ID] = stored
	if stored.SubmissionToken != "" {
		r.byToken[stored.SubmissionToken] = stored.ID
	}
	return copyOrder(stored), nil
}

func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (r *InMemoryOrderRepository) GetBySubmissionToken(ctx context.Context, token string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, seen := r.byToken[token]
	if !seen {
		return nil, ErrOrderNotFound
	}
	return copyOrder(r.orders[id]), nil
}

// Update applies mutate to the stored order under the repository lock. If
// mutate fails the stored order is left untouched.
func (r *InMemoryOrderRepository) Update(ctx context.Context, id string, mutate func(*models.Order) error) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	working := copyOrder(stored)
	if err := mutate(working); err != nil {
		return nil, err
	}
	r.orders[id] = working
	return copyOrder(working), nil
}

func (r *InMemoryOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.filter(func(o *models.Order) bool { return true }), nil
}

// ListActive returns orders that are neither completed nor cancelled
func (r *InMemoryOrderRepository) ListActive(ctx context.Context) ([]models.Order, error) {
	return r.filter(func(o *models.Order) bool {
		return o.Status != models.OrderCompleted && o.Status != models.OrderCancelled
	}), nil
}

// ListKitchen returns the orders the kitchen board shows: acknowledged and
// not yet served.
func (r *InMemoryOrderRepository) ListKitchen(ctx context.Context) ([]models.Order, error) {
	return r.filter(func(o *models.Order) bool {
		switch o.Status {
		case models.OrderConfirmed, models.OrderPreparing, models.OrderReady:
			return true
		}
		return false
	}), nil
}

func (r *InMemoryOrderRepository) ListByTable(ctx context.Context, tableNumber string) ([]models.Order, error) {
	return r.filter(func(o *models.Order) bool { return o.TableNumber == tableNumber }), nil
}

func (r *InMemoryOrderRepository) ListToday(ctx context.Context) ([]models.Order, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return r.filter(func(o *models.Order) bool {
		return !o.CreatedAt.UTC().Before(today)
	}), nil
}

func (r *InMemoryOrderRepository) AppendStatusLog(ctx context.Context, entry models.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[entry.OrderID]; !exists {
		return ErrOrderNotFound
	}
	r.history[entry.OrderID] = append(r.history[entry.OrderID], entry)
	return nil
}

func (r *InMemoryOrderRepository) StatusHistory(ctx context.Context, orderID string) ([]models.StatusChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.orders[orderID]; !exists {
		return nil, ErrOrderNotFound
	}
	entries := r.history[orderID]
	out := make([]models.StatusChange, len(entries))
	copy(out, entries)
	return out, nil
}

func (r *InMemoryOrderRepository) filter(keep func(*models.Order) bool) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, o := range r.orders {
		if keep(o) {
			orders = append(orders, *copyOrder(o))
		}
	}
	// Newest first, matching what the dashboards expect.
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func copyOrder(o *models.Order) *models.Order {
	out := *o
	if o.Items != nil {
		out.Items = make([]models.OrderItem, len(o.Items))
		copy(out.Items, o.Items)
	}
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}
