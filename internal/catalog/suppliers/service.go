package suppliers

import (
	"context"
	"fmt"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Service manages suppliers.
type Service struct {
	repo Repository
}

// NewService builds the supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new supplier. Status defaults to ACTIVE.
func (s *Service) Create(ctx context.Context, draft SupplierDraft) (*Supplier, error) {
	sup, err := supplierFromDraft(draft)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, sup)
	if err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Update replaces a supplier's fields.
func (s *Service) Update(ctx context.Context, id int64, draft SupplierDraft) (*Supplier, error) {
	sup, err := supplierFromDraft(draft)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, sup); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a supplier. Blocked while items still reference it.
func (s *Service) Delete(ctx context.Context, id int64) (*DeletedSupplier, error) {
	sup, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeletedSupplier{ID: sup.ID, Name: sup.Name}, nil
}

// Get returns one supplier.
func (s *Service) Get(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.Get(ctx, id)
}

// List returns all suppliers with item counts, newest first.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

// Options returns active suppliers for select inputs.
func (s *Service) Options(ctx context.Context) ([]Option, error) {
	return s.repo.Options(ctx)
}

func supplierFromDraft(draft SupplierDraft) (Supplier, error) {
	status := SupplierActive
	if draft.Status != nil {
		status = SupplierStatus(*draft.Status)
		if !status.Valid() {
			return Supplier{}, fmt.Errorf("%w: unknown supplier status %q", httpx.ErrValidation, *draft.Status)
		}
	}
	return Supplier{
		Name:        draft.Name,
		Country:     draft.Country,
		City:        draft.City,
		ContactName: draft.ContactName,
		Phone:       draft.Phone,
		Email:       draft.Email,
		Wechat:      draft.Wechat,
		Specialty:   draft.Specialty,
		Notes:       draft.Notes,
		Status:      status,
	}, nil
}
