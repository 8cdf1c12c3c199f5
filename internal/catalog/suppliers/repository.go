package suppliers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/db"
	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Repository is the persistence port for suppliers.
type Repository interface {
	Get(ctx context.Context, id int64) (*Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
	Create(ctx context.Context, s Supplier) (int64, error)
	Update(ctx context.Context, id int64, s Supplier) error
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

const supplierColumns = `
	id, name, country, city, contact_name, phone, email, wechat, specialty,
	notes, status, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Supplier, error) {
	var s Supplier
	err := r.pool.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Country, &s.City, &s.ContactName, &s.Phone, &s.Email,
		&s.Wechat, &s.Specialty, &s.Notes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %d: %w", id, httpx.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]Supplier, error) {
	const query = `
		SELECT ` + supplierColumns + `,
		       (SELECT COUNT(*) FROM items i WHERE i.supplier_id = suppliers.id) AS item_count
		FROM suppliers
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Country, &s.City, &s.ContactName, &s.Phone, &s.Email,
			&s.Wechat, &s.Specialty, &s.Notes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.ItemCount,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, s Supplier) (int64, error) {
	const query = `
		INSERT INTO suppliers (
			name, country, city, contact_name, phone, email, wechat, specialty, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		s.Name, s.Country, s.City, s.ContactName, s.Phone, s.Email, s.Wechat,
		s.Specialty, s.Notes, s.Status,
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", httpx.ErrConflict, err)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, s Supplier) error {
	const query = `
		UPDATE suppliers SET
			name = $2, country = $3, city = $4, contact_name = $5, phone = $6,
			email = $7, wechat = $8, specialty = $9, notes = $10, status = $11,
			updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		id, s.Name, s.Country, s.City, s.ContactName, s.Phone, s.Email, s.Wechat,
		s.Specialty, s.Notes, s.Status,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", httpx.ErrConflict, err)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: supplier %d still has items", httpx.ErrStillReferenced, id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Options(ctx context.Context) ([]Option, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM suppliers WHERE status = 'ACTIVE' ORDER BY name`)
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
