package customers

import (
	"context"
	"fmt"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// Service manages customers.
type Service struct {
	repo Repository
}

// NewService builds the customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new customer. Type defaults to INDIVIDUAL.
func (s *Service) Create(ctx context.Context, draft CustomerDraft) (*Customer, error) {
	c, err := customerFromDraft(draft)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Update replaces a customer's fields.
func (s *Service) Update(ctx context.Context, id int64, draft CustomerDraft) (*Customer, error) {
	c, err := customerFromDraft(draft)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a customer. Blocked while orders still reference them.
func (s *Service) Delete(ctx context.Context, id int64) (*DeletedCustomer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &DeletedCustomer{ID: c.ID, Name: c.Name}, nil
}

// Get returns one customer with their order history.
func (s *Service) Get(ctx context.Context, id int64) (*CustomerDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

// List returns customers newest first, optionally filtered by search term.
func (s *Service) List(ctx context.Context, search string) ([]Customer, error) {
	return s.repo.List(ctx, search)
}

// Options returns all customers for select inputs.
func (s *Service) Options(ctx context.Context) ([]Option, error) {
	return s.repo.Options(ctx)
}

func customerFromDraft(draft CustomerDraft) (Customer, error) {
	typ := CustomerIndividual
	if draft.Type != nil {
		typ = CustomerType(*draft.Type)
		if !typ.Valid() {
			return Customer{}, fmt.Errorf("%w: unknown customer type %q", httpx.ErrValidation, *draft.Type)
		}
	}
	return Customer{
		Name:    draft.Name,
		Type:    typ,
		Phone:   draft.Phone,
		Wechat:  draft.Wechat,
		Email:   draft.Email,
		Address: draft.Address,
		Source:  draft.Source,
		Notes:   draft.Notes,
	}, nil
}
