package repository

// Schema for the order store. Applied at startup when Postgres is configured.
const ordersSchemaSQL = `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		submission_token TEXT NOT NULL DEFAULT '',
		table_number TEXT NOT NULL,
		status TEXT NOT NULL,
		customer_notes TEXT NOT NULL DEFAULT '',
		total_amount BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	);

	CREATE UNIQUE INDEX IF NOT EXISTS orders_submission_token_idx
		ON orders (submission_token) WHERE submission_token <> '';

	CREATE TABLE IF NOT EXISTS order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		menu_item_id TEXT NOT NULL,
		name TEXT NOT NULL,
		quantity INT NOT NULL,
		unit_price BIGINT NOT NULL,
		special_instructions TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS order_status_log (
		id BIGSERIAL PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		status TEXT NOT NULL,
		changed_by TEXT NOT NULL DEFAULT '',
		changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		notes TEXT NOT NULL DEFAULT ''
	);`

const (
	insertOrderSQL = `
		INSERT INTO orders (id, submission_token, table_number, status, customer_notes,
			total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (submission_token) WHERE submission_token <> '' DO NOTHING`

	insertOrderItemSQL = `
		INSERT INTO order_items (id, order_id, menu_item_id, name, quantity,
			unit_price, special_instructions, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	updateOrderSQL = `
		UPDATE orders SET status = $2, customer_notes = $3, total_amount = $4,
			updated_at = $5, completed_at = $6
		WHERE id = $1`

	selectOrderSQL = `
		SELECT id, submission_token, table_number, status, customer_notes,
			total_amount, created_at, updated_at, completed_at
		FROM orders WHERE id = $1`

	selectOrderForUpdateSQL = selectOrderSQL + ` FOR UPDATE`

	selectOrderByTokenSQL = `
		SELECT id, submission_token, table_number, status, customer_notes,
			total_amount, created_at, updated_at, completed_at
		FROM orders WHERE submission_token = $1`

	selectOrderItemsSQL = `
		SELECT id, menu_item_id, name, quantity, unit_price,
			special_instructions, status, created_at, updated_at
		FROM order_items WHERE order_id = $1
		ORDER BY created_at ASC, id ASC`

	insertStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at, notes)
		VALUES ($1, $2, $3, $4, $5)`

	selectStatusLogSQL = `
		SELECT order_id, status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC, id ASC`

	listOrdersSQL = `
		SELECT id, submission_token, table_number, status, customer_notes,
			total_amount, created_at, updated_at, completed_at
		FROM orders`

	listActiveWhere  = ` WHERE status NOT IN ('COMPLETED', 'CANCELLED')`
	listKitchenWhere = ` WHERE status IN ('CONFIRMED', 'PREPARING', 'READY')`
	listByTableWhere = ` WHERE table_number = $1`
	listTodayWhere   = ` WHERE created_at >= date_trunc('day', NOW())`
	listOrderBy      = ` ORDER BY created_at DESC`
)
