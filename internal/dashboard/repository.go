package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the aggregates behind the dashboard.
type Repository interface {
	MonthlyRevenue(ctx context.Context, monthStart time.Time) (float64, error)
	TotalGrossProfit(ctx context.Context) (float64, error)
	ItemsInStock(ctx context.Context) (int, error)
	CustomerCount(ctx context.Context) (int, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Cancelled orders never count toward revenue or profit.

func (r *repository) MonthlyRevenue(ctx context.Context, monthStart time.Time) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales_orders
		WHERE status <> 'CANCELLED' AND order_date >= $1`

	var total float64
	err := r.pool.QueryRow(ctx, query, monthStart).Scan(&total)
	return total, err
}

func (r *repository) TotalGrossProfit(ctx context.Context) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(gross_profit), 0)
		FROM sales_orders
		WHERE status <> 'CANCELLED'`

	var total float64
	err := r.pool.QueryRow(ctx, query).Scan(&total)
	return total, err
}

func (r *repository) ItemsInStock(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE status = 'IN_STOCK'`).Scan(&count)
	return count, err
}

func (r *repository) CustomerCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	return count, err
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	const query = `
		SELECT o.id, o.order_number, c.name, o.status, o.total_amount, o.order_date
		FROM sales_orders o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RecentOrder
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Status, &o.TotalAmount, &o.OrderDate); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
