package products

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

// Repository is the persistence port for catalog products.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (int64, error)
	Update(ctx context.Context, id int64, p Product) error
	Delete(ctx context.Context, id int64) error
	InsertImage(ctx context.Context, img Image) error
	DeleteImages(ctx context.Context, productID int64) error
	Slugs(ctx context.Context, excludeID int64) (map[string]bool, error)
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

const productColumns = `
	id, slug, name_zh, name_en, category, subcategory, model, description_zh,
	description_en, designer, designer_series, price_range_low, price_range_high,
	collection_value, featured, created_at, updated_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(
		&p.ID, &p.Slug, &p.NameZh, &p.NameEn, &p.Category, &p.Subcategory, &p.Model,
		&p.DescriptionZh, &p.DescriptionEn, &p.Designer, &p.DesignerSeries,
		&p.PriceRangeLow, &p.PriceRangeHigh, &p.CollectionValue, &p.Featured,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *repository) Get(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
		}
		return nil, err
	}

	images, err := r.imagesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return &p, nil
}

func (r *repository) imagesFor(ctx context.Context, productID int64) ([]Image, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, product_id, url, is_primary, sort_order FROM product_images WHERE product_id = $1 ORDER BY sort_order`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.IsPrimary, &img.SortOrder); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	const query = `
		SELECT ` + productColumns + `,
		       (SELECT COUNT(*) FROM items i WHERE i.product_id = products.id) AS item_count
		FROM products
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.NameZh, &p.NameEn, &p.Category, &p.Subcategory, &p.Model,
			&p.DescriptionZh, &p.DescriptionEn, &p.Designer, &p.DesignerSeries,
			&p.PriceRangeLow, &p.PriceRangeHigh, &p.CollectionValue, &p.Featured,
			&p.CreatedAt, &p.UpdatedAt, &p.ItemCount,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Product) (int64, error) {
	const query = `
		INSERT INTO products (
			slug, name_zh, name_en, category, subcategory, model, description_zh,
			description_en, designer, designer_series, price_range_low, price_range_high,
			collection_value, featured
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		p.Slug, p.NameZh, p.NameEn, p.Category, p.Subcategory, p.Model, p.DescriptionZh,
		p.DescriptionEn, p.Designer, p.DesignerSeries, p.PriceRangeLow, p.PriceRangeHigh,
		p.CollectionValue, p.Featured,
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", httpx.ErrConflict, err)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Product) error {
	const query = `
		UPDATE products SET
			slug = $2, name_zh = $3, name_en = $4, category = $5, subcategory = $6,
			model = $7, description_zh = $8, description_en = $9, designer = $10,
			designer_series = $11, price_range_low = $12, price_range_high = $13,
			collection_value = $14, featured = $15, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		id, p.Slug, p.NameZh, p.NameEn, p.Category, p.Subcategory, p.Model,
		p.DescriptionZh, p.DescriptionEn, p.Designer, p.DesignerSeries,
		p.PriceRangeLow, p.PriceRangeHigh, p.CollectionValue, p.Featured,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", httpx.ErrConflict, err)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: product %d still has items", httpx.ErrStillReferenced, id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) InsertImage(ctx context.Context, img Image) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO product_images (product_id, url, is_primary, sort_order) VALUES ($1, $2, $3, $4)`,
		img.ProductID, img.URL, img.IsPrimary, img.SortOrder)
	return err
}

func (r *repository) DeleteImages(ctx context.Context, productID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID)
	return err
}

func (r *repository) Slugs(ctx context.Context, excludeID int64) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT slug FROM products WHERE id <> $1`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slugs := make(map[string]bool)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs[s] = true
	}
	return slugs, rows.Err()
}
