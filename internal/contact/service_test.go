package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
	"github.com/jiudi-gallery/jiudi-gallery/jobs"
)

type mockRepository struct {
	inquiries map[int64]*Inquiry
	nextID    int64

	createError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{inquiries: make(map[int64]*Inquiry), nextID: 1}
}

func (m *mockRepository) Create(ctx context.Context, inq Inquiry) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	id := m.nextID
	m.nextID++
	inq.ID = id
	m.inquiries[id] = &inq
	return id, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Inquiry, error) {
	inq, ok := m.inquiries[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *inq
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, status *InquiryStatus) ([]Inquiry, error) {
	var result []Inquiry
	for _, inq := range m.inquiries {
		if status == nil || inq.Status == *status {
			result = append(result, *inq)
		}
	}
	return result, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status InquiryStatus) error {
	inq, ok := m.inquiries[id]
	if !ok {
		return httpx.ErrNotFound
	}
	inq.Status = status
	return nil
}

type mockNotifier struct {
	payloads []jobs.ContactNotifyPayload
	err      error
}

func (n *mockNotifier) EnqueueContactNotify(ctx context.Context, payload jobs.ContactNotifyPayload) error {
	if n.err != nil {
		return n.err
	}
	n.payloads = append(n.payloads, payload)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmitStoresAndNotifies(t *testing.T) {
	m := newMockRepository()
	n := &mockNotifier{}
	svc := NewService(m, n, discardLogger())

	slug := "standard-chair-jp-001"
	inq, err := svc.Submit(context.Background(), InquiryDraft{
		Name:     "王小姐",
		Contact:  "wechat: wxid_123",
		Message:  "请问这把椅子还在吗？",
		ItemSlug: &slug,
	})
	require.NoError(t, err)

	assert.Equal(t, InquiryNew, inq.Status)
	require.Len(t, n.payloads, 1)
	assert.Equal(t, inq.ID, n.payloads[0].InquiryID)
	assert.Equal(t, slug, n.payloads[0].ItemSlug)
}

func TestSubmitSurvivesQueueFailure(t *testing.T) {
	m := newMockRepository()
	n := &mockNotifier{err: errors.New("redis down")}
	svc := NewService(m, n, discardLogger())

	inq, err := svc.Submit(context.Background(), InquiryDraft{
		Name:    "王小姐",
		Contact: "138-0000-0000",
		Message: "咨询",
	})
	require.NoError(t, err)
	assert.NotZero(t, inq.ID)
}

func TestSubmitWithoutNotifier(t *testing.T) {
	svc := NewService(newMockRepository(), nil, discardLogger())

	_, err := svc.Submit(context.Background(), InquiryDraft{Name: "a", Contact: "b", Message: "c"})
	require.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	m := newMockRepository()
	svc := NewService(m, nil, discardLogger())

	inq, err := svc.Submit(context.Background(), InquiryDraft{Name: "a", Contact: "b", Message: "c"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), inq.ID, InquiryHandled)
	require.NoError(t, err)
	assert.Equal(t, InquiryHandled, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), inq.ID, InquiryStatus("BOGUS"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}
