package products

import (
	"context"
	"fmt"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
	"github.com/jiudi-gallery/jiudi-gallery/internal/shared"
)

// Service manages catalog products.
type Service struct {
	repo Repository
}

// NewService builds the product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create derives a unique slug from the English name and persists the
// product with its images in one transaction.
func (s *Service) Create(ctx context.Context, draft ProductDraft) (*Product, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	p := productFromDraft(draft)

	var productID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		slugs, err := repo.Slugs(ctx, 0)
		if err != nil {
			return fmt.Errorf("scan slugs: %w", err)
		}
		p.Slug = shared.UniqueSlug(shared.Slugify(draft.NameEn), slugs)

		id, err := repo.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		productID = id
		return insertImages(ctx, repo, productID, draft.Images)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, productID)
}

// Update re-derives the slug and replaces the image collection.
func (s *Service) Update(ctx context.Context, id int64, draft ProductDraft) (*Product, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	p := productFromDraft(draft)

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		slugs, err := repo.Slugs(ctx, id)
		if err != nil {
			return fmt.Errorf("scan slugs: %w", err)
		}
		p.Slug = shared.UniqueSlug(shared.Slugify(draft.NameEn), slugs)

		if err := repo.Update(ctx, id, p); err != nil {
			return fmt.Errorf("update product: %w", err)
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

// Delete removes a product. Blocked while items still reference it.
func (s *Service) Delete(ctx context.Context, id int64) (*DeletedProduct, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeletedProduct{ID: p.ID, NameZh: p.NameZh, NameEn: p.NameEn}, nil
}

// Get returns one product with its images.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns products newest first with item counts.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func validateDraft(draft ProductDraft) error {
	if draft.NameZh == "" || draft.NameEn == "" {
		return fmt.Errorf("%w: both names are required", httpx.ErrValidation)
	}
	if draft.Category == "" {
		return fmt.Errorf("%w: category is required", httpx.ErrValidation)
	}
	return nil
}

func productFromDraft(draft ProductDraft) Product {
	return Product{
		NameZh:          draft.NameZh,
		NameEn:          draft.NameEn,
		Category:        draft.Category,
		Subcategory:     draft.Subcategory,
		Model:           draft.Model,
		DescriptionZh:   draft.DescriptionZh,
		DescriptionEn:   draft.DescriptionEn,
		Designer:        draft.Designer,
		DesignerSeries:  draft.DesignerSeries,
		PriceRangeLow:   draft.PriceRangeLow,
		PriceRangeHigh:  draft.PriceRangeHigh,
		CollectionValue: draft.CollectionValue,
		Featured:        draft.Featured,
	}
}

func insertImages(ctx context.Context, repo Repository, productID int64, images []ImageDraft) error {
	for i, img := range images {
		sortOrder := img.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		if err := repo.InsertImage(ctx, Image{
			ProductID: productID,
			URL:       img.URL,
			IsPrimary: img.IsPrimary,
			SortOrder: sortOrder,
		}); err != nil {
			return fmt.Errorf("insert image: %w", err)
		}
	}
	return nil
}
