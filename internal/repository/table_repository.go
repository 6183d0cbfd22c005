package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sakuratei/order-system/internal/models"
)

// TableRepository defines the contract for table records
type TableRepository interface {
	GetAll(ctx context.Context) ([]models.Table, error)
	GetAvailable(ctx context.Context) ([]models.Table, error)
	GetByNumber(ctx context.Context, number string) (*models.Table, error)
	GetByQRCode(ctx context.Context, qrCode string) (*models.Table, error)
	UpdateStatus(ctx context.Context, number string, status models.TableStatus) error
}

// InMemoryTableRepository implements TableRepository with in-memory storage
type InMemoryTableRepository struct {
	mu     sync.RWMutex
	tables map[string]models.Table // keyed by table number
}

// NewInMemoryTableRepository creates a table repository seeded with tables
// T01..T10. Each table's QR code encodes a menu URL carrying the table
// number as the `table` query parameter.
func NewInMemoryTableRepository(qrBaseURL string) *InMemoryTableRepository {
	now := time.Now().UTC()
	tables := make(map[string]models.Table)

	capacities := []int{2, 2, 4, 4, 4, 6, 6, 8, 4, 2}
	for i, capacity := range capacities {
		number := fmt.Sprintf("T%02d", i+1)
		tables[number] = models.Table{
			ID:        strconv.Itoa(i + 1),
			Number:    number,
			Capacity:  capacity,
			QRCode:    fmt.Sprintf("%s/menu?table=%s", qrBaseURL, number),
			Status:    models.TableAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return &InMemoryTableRepository{tables: tables}
}

// GetAll returns every table ordered by number
func (r *InMemoryTableRepository) GetAll(ctx context.Context) ([]models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]models.Table, 0, len(r.tables))
	for _, t := range r.tables {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Number < tables[j].Number })
	return tables, nil
}

// GetAvailable returns the tables that can seat new guests
func (r *InMemoryTableRepository) GetAvailable(ctx context.Context) ([]models.Table, error) {
	all, _ := r.GetAll(ctx)
	available := all[:0]
	for _, t := range all {
		if t.Status == models.TableAvailable {
			available = append(available, t)
		}
	}
	return available, nil
}

// GetByNumber returns a table by its number
func (r *InMemoryTableRepository) GetByNumber(ctx context.Context, number string) (*models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tables[number]
	if !exists {
		return nil, ErrTableNotFound
	}
	return &t, nil
}

// GetByQRCode returns the table whose QR code matches the given URL
func (r *InMemoryTableRepository) GetByQRCode(ctx context.Context, qrCode string) (*models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tables {
		if t.QRCode == qrCode {
			table := t
			return &table, nil
		}
	}
	return nil, ErrTableNotFound
}

// UpdateStatus sets the occupancy status of a table
func (r *InMemoryTableRepository) UpdateStatus(ctx context.Context, number string, status models.TableStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.tables[number]
	if !exists {
		return ErrTableNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	r.tables[number] = t
	return nil
}
