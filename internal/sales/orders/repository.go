package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/db"
	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Repository is the persistence port of the order lifecycle manager. The
// item-status bulk updates live here so the side effects commit or roll back
// together with the order write that triggered them.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*SalesOrder, error)
	List(ctx context.Context, req ListOrdersRequest) ([]SalesOrderWithCustomer, int, error)
	Create(ctx context.Context, order SalesOrder) (int64, error)
	Update(ctx context.Context, id int64, order SalesOrder) error
	Delete(ctx context.Context, id int64) error
	InsertLine(ctx context.Context, line SalesOrderLine) (int64, error)
	DeleteLines(ctx context.Context, orderID int64) error
	OrderNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error)
	AcquireNumberingLock(ctx context.Context, key string) error
	AvailableItems(ctx context.Context) ([]AvailableItem, error)
	MarkItemsSold(ctx context.Context, itemIDs []int64) error
	RestockItems(ctx context.Context, itemIDs []int64) error
	RestockSoldItems(ctx context.Context, itemIDs []int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Get(ctx context.Context, id int64) (*SalesOrder, error) {
	const query = `
		SELECT id, order_number, customer_id, order_date, delivery_date, payment_date,
		       status, shipping_addr, notes, total_amount, total_cost, gross_profit,
		       created_at, updated_at
		FROM sales_orders
		WHERE id = $1`

	var o SalesOrder
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.DeliveryDate, &o.PaymentDate,
		&o.Status, &o.ShippingAddr, &o.Notes, &o.TotalAmount, &o.TotalCost, &o.GrossProfit,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
		}
		return nil, err
	}

	lines, err := r.getLines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *repository) getLines(ctx context.Context, orderID int64) ([]SalesOrderLine, error) {
	const query = `
		SELECT l.id, l.sales_order_id, l.item_id, l.price, l.cost,
		       i.sku_code, i.name, i.total_cost, i.status
		FROM sales_order_items l
		JOIN items i ON i.id = l.item_id
		WHERE l.sales_order_id = $1
		ORDER BY l.id`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []SalesOrderLine
	for rows.Next() {
		var l SalesOrderLine
		if err := rows.Scan(
			&l.ID, &l.SalesOrderID, &l.ItemID, &l.Price, &l.Cost,
			&l.ItemSKUCode, &l.ItemName, &l.ItemTotalCost, &l.ItemStatus,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]SalesOrderWithCustomer, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("so.customer_id = $%d", argPos))
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("so.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	whereClause := ""
	for i, cond := range conditions {
		if i == 0 {
			whereClause = "WHERE " + cond
		} else {
			whereClause += " AND " + cond
		}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sales_orders so %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT so.id, so.order_number, so.customer_id, so.order_date, so.delivery_date,
		       so.payment_date, so.status, so.shipping_addr, so.notes,
		       so.total_amount, so.total_cost, so.gross_profit,
		       so.created_at, so.updated_at,
		       c.name AS customer_name,
		       (SELECT COUNT(*) FROM sales_order_items l WHERE l.sales_order_id = so.id) AS line_count
		FROM sales_orders so
		JOIN customers c ON c.id = so.customer_id
		%s
		ORDER BY so.created_at DESC, so.id DESC
		LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []SalesOrderWithCustomer
	for rows.Next() {
		var o SalesOrderWithCustomer
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.DeliveryDate,
			&o.PaymentDate, &o.Status, &o.ShippingAddr, &o.Notes,
			&o.TotalAmount, &o.TotalCost, &o.GrossProfit,
			&o.CreatedAt, &o.UpdatedAt,
			&o.CustomerName, &o.LineCount,
		); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, order SalesOrder) (int64, error) {
	const query = `
		INSERT INTO sales_orders (
			order_number, customer_id, order_date, delivery_date, payment_date,
			status, shipping_addr, notes, total_amount, total_cost, gross_profit
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		order.OrderNumber, order.CustomerID, order.OrderDate, order.DeliveryDate, order.PaymentDate,
		order.Status, order.ShippingAddr, order.Notes, order.TotalAmount, order.TotalCost, order.GrossProfit,
	).Scan(&id)
	if err != nil {
		return 0, classifyWriteError(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, order SalesOrder) error {
	const query = `
		UPDATE sales_orders SET
			order_number = $2, customer_id = $3, order_date = $4, delivery_date = $5,
			payment_date = $6, status = $7, shipping_addr = $8, notes = $9,
			total_amount = $10, total_cost = $11, gross_profit = $12, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		id, order.OrderNumber, order.CustomerID, order.OrderDate, order.DeliveryDate,
		order.PaymentDate, order.Status, order.ShippingAddr, order.Notes,
		order.TotalAmount, order.TotalCost, order.GrossProfit,
	)
	if err != nil {
		return classifyWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		return classifyWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) InsertLine(ctx context.Context, line SalesOrderLine) (int64, error) {
	const query = `
		INSERT INTO sales_order_items (sales_order_id, item_id, price, cost)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, line.SalesOrderID, line.ItemID, line.Price, line.Cost).Scan(&id)
	if err != nil {
		return 0, classifyWriteError(err)
	}
	return id, nil
}

func (r *repository) DeleteLines(ctx context.Context, orderID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sales_order_items WHERE sales_order_id = $1`, orderID)
	return err
}

func (r *repository) OrderNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT order_number FROM sales_orders WHERE order_number LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// AcquireNumberingLock takes a transaction-scoped advisory lock serialising
// number generation for one prefix. Released automatically at commit or
// rollback; only meaningful inside WithTx.
func (r *repository) AcquireNumberingLock(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	return err
}

func (r *repository) AvailableItems(ctx context.Context) ([]AvailableItem, error) {
	const query = `
		SELECT id, sku_code, name, selling_price, total_cost
		FROM items
		WHERE status = 'IN_STOCK'
		ORDER BY sku_code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AvailableItem
	for rows.Next() {
		var it AvailableItem
		if err := rows.Scan(&it.ID, &it.SKUCode, &it.Name, &it.SellingPrice, &it.TotalCost); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) MarkItemsSold(ctx context.Context, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE items SET status = 'SOLD', updated_at = now() WHERE id = ANY($1)`, itemIDs)
	return err
}

func (r *repository) RestockItems(ctx context.Context, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE items SET status = 'IN_STOCK', updated_at = now() WHERE id = ANY($1)`, itemIDs)
	return err
}

// RestockSoldItems reverts only items whose current status is SOLD. The
// status filter is the guard against releasing an item that another path
// (e.g. a manual reservation) moved out of SOLD in the meantime.
func (r *repository) RestockSoldItems(ctx context.Context, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE items SET status = 'IN_STOCK', updated_at = now() WHERE id = ANY($1) AND status = 'SOLD'`, itemIDs)
	return err
}

func classifyWriteError(err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", httpx.ErrConflict, err)
	case db.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", httpx.ErrReferencedRowMissing, err)
	default:
		return err
	}
}
