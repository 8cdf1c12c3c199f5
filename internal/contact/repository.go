package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Repository is the persistence port for contact inquiries.
type Repository interface {
	Create(ctx context.Context, inq Inquiry) (int64, error)
	Get(ctx context.Context, id int64) (*Inquiry, error)
	List(ctx context.Context, status *InquiryStatus) ([]Inquiry, error)
	UpdateStatus(ctx context.Context, id int64, status InquiryStatus) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, inq Inquiry) (int64, error) {
	const query = `
		INSERT INTO contact_inquiries (name, contact, message, item_slug, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query, inq.Name, inq.Contact, inq.Message, inq.ItemSlug, inq.Status).Scan(&id)
	return id, err
}

func (r *repository) Get(ctx context.Context, id int64) (*Inquiry, error) {
	var inq Inquiry
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, contact, message, item_slug, status, created_at FROM contact_inquiries WHERE id = $1`, id,
	).Scan(&inq.ID, &inq.Name, &inq.Contact, &inq.Message, &inq.ItemSlug, &inq.Status, &inq.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("inquiry %d: %w", id, httpx.ErrNotFound)
		}
		return nil, err
	}
	return &inq, nil
}

func (r *repository) List(ctx context.Context, status *InquiryStatus) ([]Inquiry, error) {
	query := `SELECT id, name, contact, message, item_slug, status, created_at FROM contact_inquiries`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Inquiry
	for rows.Next() {
		var inq Inquiry
		if err := rows.Scan(&inq.ID, &inq.Name, &inq.Contact, &inq.Message, &inq.ItemSlug, &inq.Status, &inq.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, inq)
	}
	return result, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status InquiryStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contact_inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inquiry %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
