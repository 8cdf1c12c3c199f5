package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
	"github.com/jiudi-gallery/jiudi-gallery/jobs"
)

// Notifier enqueues the staff notification for a stored inquiry.
type Notifier interface {
	EnqueueContactNotify(ctx context.Context, payload jobs.ContactNotifyPayload) error
}

// Service stores inquiries and hands them to the notifier.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService builds the contact service. notifier may be nil when no
// queue is configured; inquiries are still stored.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Submit stores a public inquiry and enqueues the staff notification.
// A queue failure does not fail the submission.
func (s *Service) Submit(ctx context.Context, draft InquiryDraft) (*Inquiry, error) {
	id, err := s.repo.Create(ctx, Inquiry{
		Name:     draft.Name,
		Contact:  draft.Contact,
		Message:  draft.Message,
		ItemSlug: draft.ItemSlug,
		Status:   InquiryNew,
	})
	if err != nil {
		return nil, fmt.Errorf("store inquiry: %w", err)
	}

	if s.notifier != nil {
		payload := jobs.ContactNotifyPayload{
			InquiryID: id,
			Name:      draft.Name,
			Contact:   draft.Contact,
			Message:   draft.Message,
		}
		if draft.ItemSlug != nil {
			payload.ItemSlug = *draft.ItemSlug
		}
		if err := s.notifier.EnqueueContactNotify(ctx, payload); err != nil {
			s.logger.Error("enqueue contact notification failed",
				slog.Int64("inquiry_id", id), slog.Any("error", err))
		}
	}

	return s.repo.Get(ctx, id)
}

// List returns inquiries for the admin, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *InquiryStatus) ([]Inquiry, error) {
	return s.repo.List(ctx, status)
}

// UpdateStatus moves an inquiry through the follow-up workflow.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status InquiryStatus) (*Inquiry, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown inquiry status %q", httpx.ErrValidation, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}
