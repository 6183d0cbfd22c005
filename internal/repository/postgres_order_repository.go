package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakuratei/order-system/internal/models"
)

// PostgresOrderRepository implements OrderRepository on a pgx connection
// pool. Mutations run inside a transaction holding a row lock, which gives
// the same serialization guarantee the in-memory store gets from its mutex.
type PostgresOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderRepository connects to Postgres and ensures the order
// schema exists.
func NewPostgresOrderRepository(ctx context.Context, databaseURL string) (*PostgresOrderRepository, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, ordersSchemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &PostgresOrderRepository{pool: pool}, nil
}

// Close releases the connection pool
func (r *PostgresOrderRepository) Close() {
	r.pool.Close()
}

func (r *PostgresOrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, insertOrderSQL,
		o.ID, o.SubmissionToken, o.TableNumber, o.Status, o.CustomerNotes,
		o.TotalAmount, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Same submission token already accepted; hand back the stored order.
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			return nil, err
		}
		return r.GetBySubmissionToken(ctx, o.SubmissionToken)
	}

	for _, item := range o.Items {
		_, err := tx.Exec(ctx, insertOrderItemSQL,
			item.ID, o.ID, item.MenuItemID, item.Name, item.Quantity,
			item.UnitPrice, item.SpecialInstructions, item.Status,
			item.CreatedAt, item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return copyOrder(o), nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	row := r.pool.QueryRow(ctx, selectOrderSQL, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PostgresOrderRepository) GetBySubmissionToken(ctx context.Context, token string) (*models.Order, error) {
	row := r.pool.QueryRow(ctx, selectOrderByTokenSQL, token)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update loads the order under FOR UPDATE, applies mutate, and writes the
// result back in the same transaction.
func (r *PostgresOrderRepository) Update(ctx context.Context, id string, mutate func(*models.Order) error) (*models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	o, err := scanOrder(tx.QueryRow(ctx, selectOrderForUpdateSQL, id))
	if err != nil {
		return nil, err
	}
	if err := scanItemsInto(ctx, tx, o); err != nil {
		return nil, err
	}

	if err := mutate(o); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, updateOrderSQL,
		o.ID, o.Status, o.CustomerNotes, o.TotalAmount, o.UpdatedAt, o.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	for _, item := range o.Items {
		_, err := tx.Exec(ctx, insertOrderItemSQL,
			item.ID, o.ID, item.MenuItemID, item.Name, item.Quantity,
			item.UnitPrice, item.SpecialInstructions, item.Status,
			item.CreatedAt, item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}
	return o, nil
}

func (r *PostgresOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.listWhere(ctx, "")
}

func (r *PostgresOrderRepository) ListActive(ctx context.Context) ([]models.Order, error) {
	return r.listWhere(ctx, listActiveWhere)
}

func (r *PostgresOrderRepository) ListKitchen(ctx context.Context) ([]models.Order, error) {
	return r.listWhere(ctx, listKitchenWhere)
}

func (r *PostgresOrderRepository) ListByTable(ctx context.Context, tableNumber string) ([]models.Order, error) {
	return r.listWhere(ctx, listByTableWhere, tableNumber)
}

func (r *PostgresOrderRepository) ListToday(ctx context.Context) ([]models.Order, error) {
	return r.listWhere(ctx, listTodayWhere)
}

func (r *PostgresOrderRepository) AppendStatusLog(ctx context.Context, entry models.StatusChange) error {
	_, err := r.pool.Exec(ctx, insertStatusLogSQL,
		entry.OrderID, entry.Status, entry.ChangedBy, entry.ChangedAt, entry.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepository) StatusHistory(ctx context.Context, orderID string) ([]models.StatusChange, error) {
	rows, err := r.pool.Query(ctx, selectStatusLogSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status log: %w", err)
	}
	defer rows.Close()

	var entries []models.StatusChange
	for rows.Next() {
		var e models.StatusChange
		if err := rows.Scan(&e.OrderID, &e.Status, &e.ChangedBy, &e.ChangedAt, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan status log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PostgresOrderRepository) listWhere(ctx context.Context, where string, args ...any) ([]models.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL+where+listOrderBy, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, o *models.Order) error {
	rows, err := r.pool.Query(ctx, selectOrderItemsSQL, o.ID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows, o)
}

type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanItemsInto(ctx context.Context, q pgxQuerier, o *models.Order) error {
	rows, err := q.Query(ctx, selectOrderItemsSQL, o.ID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows, o)
}

func scanItems(rows pgx.Rows, o *models.Order) error {
	o.Items = nil
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.MenuItemID, &item.Name, &item.Quantity,
			&item.UnitPrice, &item.SpecialInstructions, &item.Status,
			&item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.SubmissionToken, &o.TableNumber, &o.Status,
		&o.CustomerNotes, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt, &o.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &o, nil
}
