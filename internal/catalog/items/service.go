package items

import (
	"context"
	"fmt"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
	"github.com/jiudi-gallery/jiudi-gallery/internal/shared"
)

// Service manages inventory items. Total cost, slug and SKU code are derived
// on every write; the SKU is generated once at creation and then fixed for
// the life of the item.
type Service struct {
	repo Repository
}

// NewService builds the item service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create derives total cost, a unique slug and the next SKU code for the
// item's designer-series prefix, then persists item and images in one
// transaction.
func (s *Service) Create(ctx context.Context, draft ItemDraft) (*Item, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	item := itemFromDraft(draft)
	item.TotalCost = CalculateTotalCost(costComponents(draft))
	if item.Status == "" {
		item.Status = StatusInStock
	}

	var itemID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		slugs, err := repo.Slugs(ctx, 0)
		if err != nil {
			return fmt.Errorf("scan slugs: %w", err)
		}
		item.Slug = shared.UniqueSlug(shared.Slugify(slugName(draft)), slugs)

		prefix := SKUPrefix(derefString(draft.DesignerSeries))
		if err := repo.AcquireNumberingLock(ctx, shared.NumberingLockKey(prefix)); err != nil {
			return fmt.Errorf("acquire numbering lock: %w", err)
		}
		existing, err := repo.SKUCodesWithPrefix(ctx, prefix)
		if err != nil {
			return fmt.Errorf("scan sku codes: %w", err)
		}
		item.SKUCode = FormatSKU(prefix, nextSKUSequence(existing, prefix))

		id, err := repo.Create(ctx, item)
		if err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		itemID = id

		return insertImages(ctx, repo, itemID, draft.Images)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, itemID)
}

// Update recomputes total cost and slug and replaces the image collection.
// The SKU code is left unchanged.
func (s *Service) Update(ctx context.Context, id int64, draft ItemDraft) (*Item, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	item := itemFromDraft(draft)
	item.TotalCost = CalculateTotalCost(costComponents(draft))
	if item.Status == "" {
		item.Status = StatusInStock
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		slugs, err := repo.Slugs(ctx, id)
		if err != nil {
			return fmt.Errorf("scan slugs: %w", err)
		}
		item.Slug = shared.UniqueSlug(shared.Slugify(slugName(draft)), slugs)

		if err := repo.Update(ctx, id, item); err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		if draft.Images != nil {
			if err := repo.DeleteImages(ctx, id); err != nil {
				return fmt.Errorf("delete images: %w", err)
			}
			return insertImages(ctx, repo, id, draft.Images)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// Delete removes an item. The store blocks the delete while the item is
// referenced by order lines; that surfaces as a still-referenced conflict.
func (s *Service) Delete(ctx context.Context, id int64) (*DeletedItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeletedItem{ID: item.ID, SKUCode: item.SKUCode, Name: item.Name}, nil
}

// BatchDelete removes several items at once; it stops at the first failure.
func (s *Service) BatchDelete(ctx context.Context, ids []int64) ([]DeletedItem, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no item ids given", httpx.ErrValidation)
	}
	deleted := make([]DeletedItem, 0, len(ids))
	for _, id := range ids {
		d, err := s.Delete(ctx, id)
		if err != nil {
			return deleted, err
		}
		deleted = append(deleted, *d)
	}
	return deleted, nil
}

// Get returns one item with its images.
func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.Get(ctx, id)
}

// List returns items ordered by SKU code.
func (s *Service) List(ctx context.Context, req ListItemsRequest) ([]ItemWithRefs, error) {
	return s.repo.List(ctx, req)
}

// Options returns the picker data for the item form.
func (s *Service) Options(ctx context.Context) (FormOptions, error) {
	products, err := s.repo.ProductOptions(ctx)
	if err != nil {
		return FormOptions{}, fmt.Errorf("product options: %w", err)
	}
	suppliers, err := s.repo.SupplierOptions(ctx)
	if err != nil {
		return FormOptions{}, fmt.Errorf("supplier options: %w", err)
	}
	return FormOptions{
		Products:        products,
		Suppliers:       suppliers,
		DesignerSeries:  DesignerSeries(),
		ConditionGrades: ConditionGrades,
		Statuses:        []ItemStatus{StatusInStock, StatusInTransit, StatusReserved, StatusSold},
	}, nil
}

// FormOptions feeds the admin item form pickers.
type FormOptions struct {
	Products        []Option     `json:"products"`
	Suppliers       []Option     `json:"suppliers"`
	DesignerSeries  []string     `json:"designer_series"`
	ConditionGrades []string     `json:"condition_grades"`
	Statuses        []ItemStatus `json:"statuses"`
}

func validateDraft(draft ItemDraft) error {
	if draft.Name == "" {
		return fmt.Errorf("%w: name is required", httpx.ErrValidation)
	}
	if draft.Status != "" && !draft.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, draft.Status)
	}
	return nil
}

func itemFromDraft(draft ItemDraft) Item {
	return Item{
		Name:             draft.Name,
		NameEn:           draft.NameEn,
		Recommendation:   draft.Recommendation,
		Notes:            draft.Notes,
		ProductID:        draft.ProductID,
		SupplierID:       draft.SupplierID,
		DesignerSeries:   draft.DesignerSeries,
		Manufacturer:     draft.Manufacturer,
		Era:              draft.Era,
		Material:         draft.Material,
		Dimensions:       draft.Dimensions,
		ConditionGrade:   draft.ConditionGrade,
		ListPrice:        draft.ListPrice,
		SellingPrice:     draft.SellingPrice,
		ShippingCostUsd:  draft.ShippingCostUsd,
		ShippingCostRmb:  draft.ShippingCostRmb,
		CustomsFees:      draft.CustomsFees,
		ImportDuties:     draft.ImportDuties,
		PurchasePriceUsd: draft.PurchasePriceUsd,
		PurchasePriceRmb: draft.PurchasePriceRmb,
		Status:           draft.Status,
		ShowOnWebsite:    draft.ShowOnWebsite,
	}
}

func costComponents(draft ItemDraft) CostComponents {
	return CostComponents{
		ShippingCostRmb:  draft.ShippingCostRmb,
		CustomsFees:      draft.CustomsFees,
		ImportDuties:     draft.ImportDuties,
		PurchasePriceRmb: draft.PurchasePriceRmb,
	}
}

func slugName(draft ItemDraft) string {
	if draft.NameEn != nil && *draft.NameEn != "" {
		return *draft.NameEn
	}
	return draft.Name
}

func insertImages(ctx context.Context, repo Repository, itemID int64, images []ImageDraft) error {
	for i, img := range images {
		sortOrder := img.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		if err := repo.InsertImage(ctx, Image{
			ItemID:    itemID,
			URL:       img.URL,
			IsPrimary: img.IsPrimary,
			SortOrder: sortOrder,
		}); err != nil {
			return fmt.Errorf("insert image: %w", err)
		}
	}
	return nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
