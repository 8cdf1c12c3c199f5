package items

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

// Repository is the persistence port for inventory items.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, req ListItemsRequest) ([]ItemWithRefs, error)
	Create(ctx context.Context, item Item) (int64, error)
	Update(ctx context.Context, id int64, item Item) error
	Delete(ctx context.Context, id int64) error
	InsertImage(ctx context.Context, img Image) error
	DeleteImages(ctx context.Context, itemID int64) error
	Slugs(ctx context.Context, excludeID int64) (map[string]bool, error)
	SKUCodesWithPrefix(ctx context.Context, prefix string) ([]string, error)
	AcquireNumberingLock(ctx context.Context, key string) error
	ProductOptions(ctx context.Context) ([]Option, error)
	SupplierOptions(ctx context.Context) ([]Option, error)
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

const itemColumns = `
	id, sku_code, slug, name, name_en, recommendation, notes, product_id, supplier_id,
	designer_series, manufacturer, era, material, dimensions, condition_grade,
	list_price, selling_price, shipping_cost_usd, shipping_cost_rmb, customs_fees,
	import_duties, purchase_price_usd, purchase_price_rmb, total_cost, status,
	show_on_website, created_at, updated_at`

func scanItem(row pgx.Row, it *Item) error {
	return row.Scan(
		&it.ID, &it.SKUCode, &it.Slug, &it.Name, &it.NameEn, &it.Recommendation, &it.Notes,
		&it.ProductID, &it.SupplierID, &it.DesignerSeries, &it.Manufacturer, &it.Era,
		&it.Material, &it.Dimensions, &it.ConditionGrade, &it.ListPrice, &it.SellingPrice,
		&it.ShippingCostUsd, &it.ShippingCostRmb, &it.CustomsFees, &it.ImportDuties,
		&it.PurchasePriceUsd, &it.PurchasePriceRmb, &it.TotalCost, &it.Status,
		&it.ShowOnWebsite, &it.CreatedAt, &it.UpdatedAt,
	)
}

func (r *repository) Get(ctx context.Context, id int64) (*Item, error) {
	var it Item
	err := scanItem(r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id), &it)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, httpx.ErrNotFound)
		}
		return nil, err
	}

	images, err := r.images(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Images = images
	return &it, nil
}

func (r *repository) images(ctx context.Context, itemID int64) ([]Image, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, item_id, url, is_primary, sort_order FROM item_images WHERE item_id = $1 ORDER BY sort_order`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ItemID, &img.URL, &img.IsPrimary, &img.SortOrder); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListItemsRequest) ([]ItemWithRefs, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("i.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.Designer != nil {
		conditions = append(conditions, fmt.Sprintf("i.designer_series = $%d", argPos))
		args = append(args, *req.Designer)
		argPos++
	}
	if req.Category != nil {
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", argPos))
		args = append(args, *req.Category)
		argPos++
	}
	if req.Query != nil {
		conditions = append(conditions, fmt.Sprintf("(i.sku_code ILIKE '%%' || $%d || '%%' OR i.name ILIKE '%%' || $%d || '%%' OR i.name_en ILIKE '%%' || $%d || '%%')", argPos, argPos, argPos))
		args = append(args, *req.Query)
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

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT i.id, i.sku_code, i.slug, i.name, i.name_en, i.designer_series,
		       i.condition_grade, i.selling_price, i.total_cost, i.status,
		       i.show_on_website, i.created_at, i.updated_at,
		       p.name_zh AS product_name, s.name AS supplier_name
		FROM items i
		LEFT JOIN products p ON p.id = i.product_id
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		%s
		ORDER BY i.sku_code
		LIMIT $%d`, whereClause, argPos)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemWithRefs
	for rows.Next() {
		var it ItemWithRefs
		if err := rows.Scan(
			&it.ID, &it.SKUCode, &it.Slug, &it.Name, &it.NameEn, &it.DesignerSeries,
			&it.ConditionGrade, &it.SellingPrice, &it.TotalCost, &it.Status,
			&it.ShowOnWebsite, &it.CreatedAt, &it.UpdatedAt,
			&it.ProductName, &it.SupplierName,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) Create(ctx context.Context, item Item) (int64, error) {
	const query = `
		INSERT INTO items (
			sku_code, slug, name, name_en, recommendation, notes, product_id, supplier_id,
			designer_series, manufacturer, era, material, dimensions, condition_grade,
			list_price, selling_price, shipping_cost_usd, shipping_cost_rmb, customs_fees,
			import_duties, purchase_price_usd, purchase_price_rmb, total_cost, status,
			show_on_website
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		          $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		item.SKUCode, item.Slug, item.Name, item.NameEn, item.Recommendation, item.Notes,
		item.ProductID, item.SupplierID, item.DesignerSeries, item.Manufacturer, item.Era,
		item.Material, item.Dimensions, item.ConditionGrade, item.ListPrice, item.SellingPrice,
		item.ShippingCostUsd, item.ShippingCostRmb, item.CustomsFees, item.ImportDuties,
		item.PurchasePriceUsd, item.PurchasePriceRmb, item.TotalCost, item.Status,
		item.ShowOnWebsite,
	).Scan(&id)
	if err != nil {
		return 0, classifyInsertError(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, item Item) error {
	const query = `
		UPDATE items SET
			slug = $2, name = $3, name_en = $4, recommendation = $5, notes = $6,
			product_id = $7, supplier_id = $8, designer_series = $9, manufacturer = $10,
			era = $11, material = $12, dimensions = $13, condition_grade = $14,
			list_price = $15, selling_price = $16, shipping_cost_usd = $17,
			shipping_cost_rmb = $18, customs_fees = $19, import_duties = $20,
			purchase_price_usd = $21, purchase_price_rmb = $22, total_cost = $23,
			status = $24, show_on_website = $25, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		id, item.Slug, item.Name, item.NameEn, item.Recommendation, item.Notes,
		item.ProductID, item.SupplierID, item.DesignerSeries, item.Manufacturer, item.Era,
		item.Material, item.Dimensions, item.ConditionGrade, item.ListPrice, item.SellingPrice,
		item.ShippingCostUsd, item.ShippingCostRmb, item.CustomsFees, item.ImportDuties,
		item.PurchasePriceUsd, item.PurchasePriceRmb, item.TotalCost, item.Status,
		item.ShowOnWebsite,
	)
	if err != nil {
		return classifyInsertError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: item %d is referenced by sales orders", httpx.ErrStillReferenced, id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) InsertImage(ctx context.Context, img Image) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO item_images (item_id, url, is_primary, sort_order) VALUES ($1, $2, $3, $4)`,
		img.ItemID, img.URL, img.IsPrimary, img.SortOrder)
	return err
}

func (r *repository) DeleteImages(ctx context.Context, itemID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM item_images WHERE item_id = $1`, itemID)
	return err
}

func (r *repository) Slugs(ctx context.Context, excludeID int64) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT slug FROM items WHERE id <> $1`, excludeID)
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

func (r *repository) SKUCodesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sku_code FROM items WHERE sku_code LIKE $1 || '-%'`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

func (r *repository) AcquireNumberingLock(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	return err
}

func (r *repository) ProductOptions(ctx context.Context) ([]Option, error) {
	return r.options(ctx, `SELECT id, name_zh FROM products ORDER BY name_zh`)
}

func (r *repository) SupplierOptions(ctx context.Context) ([]Option, error) {
	return r.options(ctx, `SELECT id, name FROM suppliers WHERE status = 'ACTIVE' ORDER BY name`)
}

func (r *repository) options(ctx context.Context, query string) ([]Option, error) {
	rows, err := r.db.Query(ctx, query)
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

func classifyInsertError(err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", httpx.ErrConflict, err)
	case db.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", httpx.ErrReferencedRowMissing, err)
	default:
		return err
	}
}
