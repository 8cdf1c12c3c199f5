package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/db"
	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Repository is the persistence port for customers.
type Repository interface {
	Get(ctx context.Context, id int64) (*Customer, error)
	GetDetail(ctx context.Context, id int64) (*CustomerDetail, error)
	List(ctx context.Context, search string) ([]Customer, error)
	Create(ctx context.Context, c Customer) (int64, error)
	Update(ctx context.Context, id int64, c Customer) error
	Delete(ctx context.Context, id int64) error
	Options(ctx context.Context) ([]Option, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `
	id, name, type, phone, wechat, email, address, source, notes, created_at, updated_at`

func scanCustomer(row pgx.Row, c *Customer) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Type, &c.Phone, &c.Wechat, &c.Email, &c.Address,
		&c.Source, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := scanCustomer(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %d: %w", id, httpx.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetDetail(ctx context.Context, id int64) (*CustomerDetail, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT o.id, o.order_number, o.status, o.total_amount, o.order_date,
		       (SELECT COUNT(*) FROM sales_order_items l WHERE l.sales_order_id = o.id) AS line_count
		FROM sales_orders o
		WHERE o.customer_id = $1
		ORDER BY o.order_date DESC, o.id DESC`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail := CustomerDetail{Customer: *c}
	for rows.Next() {
		var o OrderSummary
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.Status, &o.TotalAmount, &o.OrderDate, &o.LineCount); err != nil {
			return nil, err
		}
		detail.Orders = append(detail.Orders, o)
		detail.OrderCount++
		if o.Status != "CANCELLED" {
			detail.TotalSpent += o.TotalAmount
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *repository) List(ctx context.Context, search string) ([]Customer, error) {
	query := `
		SELECT ` + customerColumns + `,
		       (SELECT COUNT(*) FROM sales_orders o WHERE o.customer_id = customers.id) AS order_count,
		       COALESCE((SELECT SUM(o.total_amount) FROM sales_orders o
		                 WHERE o.customer_id = customers.id AND o.status <> 'CANCELLED'), 0) AS total_spent
		FROM customers`
	args := []any{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR phone ILIKE $1 OR wechat ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Type, &c.Phone, &c.Wechat, &c.Email, &c.Address,
			&c.Source, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &c.OrderCount, &c.TotalSpent,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Customer) (int64, error) {
	const query = `
		INSERT INTO customers (name, type, phone, wechat, email, address, source, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		c.Name, c.Type, c.Phone, c.Wechat, c.Email, c.Address, c.Source, c.Notes,
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", httpx.ErrConflict, err)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Customer) error {
	const query = `
		UPDATE customers SET
			name = $2, type = $3, phone = $4, wechat = $5, email = $6,
			address = $7, source = $8, notes = $9, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		id, c.Name, c.Type, c.Phone, c.Wechat, c.Email, c.Address, c.Source, c.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer %d still has orders", httpx.ErrStillReferenced, id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Options(ctx context.Context) ([]Option, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []Option
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}
