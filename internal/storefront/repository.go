package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// itemRow carries both languages; the service projects one per request.
type itemRow struct {
	ID             int64
	Slug           string
	SKUCode        string
	NameZh         string
	NameEn         *string
	DesignerSeries *string
	Recommendation *string
	Manufacturer   *string
	Era            *string
	Material       *string
	Dimensions     *string
	ConditionGrade *string
	SellingPrice   *float64
	Status         string
	Category       *string
	ProductNameZh  *string
	ProductNameEn  *string
	Images         []PublicImage
}

type productRow struct {
	ID            int64
	Slug          string
	NameZh        string
	NameEn        string
	Category      string
	Designer      *string
	DescriptionZh *string
	DescriptionEn *string
	Images        []PublicImage
}

// Repository reads the published subset of the catalog.
type Repository interface {
	PublishedItems(ctx context.Context, filter ListFilter) ([]itemRow, error)
	PublishedItemBySlug(ctx context.Context, slug string) (*itemRow, error)
	FeaturedProducts(ctx context.Context) ([]productRow, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const itemRowColumns = `
	i.id, i.slug, i.sku_code, i.name, i.name_en, i.designer_series,
	i.recommendation, i.manufacturer, i.era, i.material, i.dimensions,
	i.condition_grade, i.selling_price, i.status, p.category, p.name_zh, p.name_en`

func scanItemRow(row pgx.Row, it *itemRow) error {
	return row.Scan(
		&it.ID, &it.Slug, &it.SKUCode, &it.NameZh, &it.NameEn, &it.DesignerSeries,
		&it.Recommendation, &it.Manufacturer, &it.Era, &it.Material, &it.Dimensions,
		&it.ConditionGrade, &it.SellingPrice, &it.Status, &it.Category,
		&it.ProductNameZh, &it.ProductNameEn,
	)
}

func (r *repository) PublishedItems(ctx context.Context, filter ListFilter) ([]itemRow, error) {
	query := `
		SELECT ` + itemRowColumns + `
		FROM items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.show_on_website = true`
	args := []any{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND p.category = $%d", len(args))
	}
	if filter.DesignerSeries != "" {
		args = append(args, filter.DesignerSeries)
		query += fmt.Sprintf(" AND i.designer_series = $%d", len(args))
	}
	query += ` ORDER BY i.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []itemRow
	for rows.Next() {
		var it itemRow
		if err := scanItemRow(rows, &it); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		images, err := r.itemImages(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Images = images
	}
	return result, nil
}

func (r *repository) PublishedItemBySlug(ctx context.Context, slug string) (*itemRow, error) {
	query := `
		SELECT ` + itemRowColumns + `
		FROM items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.show_on_website = true AND i.slug = $1`

	var it itemRow
	if err := scanItemRow(r.pool.QueryRow(ctx, query, slug), &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %q: %w", slug, httpx.ErrNotFound)
		}
		return nil, err
	}

	images, err := r.itemImages(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	it.Images = images
	return &it, nil
}

func (r *repository) itemImages(ctx context.Context, itemID int64) ([]PublicImage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT url, is_primary, sort_order FROM item_images WHERE item_id = $1 ORDER BY sort_order`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []PublicImage{}
	for rows.Next() {
		var img PublicImage
		if err := rows.Scan(&img.URL, &img.IsPrimary, &img.SortOrder); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *repository) FeaturedProducts(ctx context.Context) ([]productRow, error) {
	const query = `
		SELECT id, slug, name_zh, name_en, category, designer, description_zh, description_en
		FROM products
		WHERE featured = true
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []productRow
	for rows.Next() {
		var p productRow
		if err := rows.Scan(&p.ID, &p.Slug, &p.NameZh, &p.NameEn, &p.Category,
			&p.Designer, &p.DescriptionZh, &p.DescriptionEn); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		images, err := r.productImages(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Images = images
	}
	return result, nil
}

func (r *repository) productImages(ctx context.Context, productID int64) ([]PublicImage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT url, is_primary, sort_order FROM product_images WHERE product_id = $1 ORDER BY sort_order`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []PublicImage{}
	for rows.Next() {
		var img PublicImage
		if err := rows.Scan(&img.URL, &img.IsPrimary, &img.SortOrder); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
