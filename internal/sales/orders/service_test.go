package orders

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	orders      map[int64]*SalesOrder
	lines       map[int64][]SalesOrderLine
	itemStatus  map[int64]string
	nextOrderID int64
	nextLineID  int64

	lockKeys          []string
	markSoldCalls     int
	restockCalls      int
	restockSoldCalls  int

	// Error injection
	txError         error
	createError     error
	insertLineError error
	markSoldError   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orders:      make(map[int64]*SalesOrder),
		lines:       make(map[int64][]SalesOrderLine),
		itemStatus:  make(map[int64]string),
		nextOrderID: 1,
		nextLineID:  1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*SalesOrder, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *o
	copied.Lines = append([]SalesOrderLine(nil), m.lines[id]...)
	for i := range copied.Lines {
		copied.Lines[i].ItemStatus = m.itemStatus[copied.Lines[i].ItemID]
	}
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListOrdersRequest) ([]SalesOrderWithCustomer, int, error) {
	result := []SalesOrderWithCustomer{}
	for _, o := range m.orders {
		result = append(result, SalesOrderWithCustomer{SalesOrder: *o})
	}
	return result, len(result), nil
}

func (m *mockRepository) Create(ctx context.Context, order SalesOrder) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	for _, existing := range m.orders {
		if existing.OrderNumber == order.OrderNumber {
			return 0, httpx.ErrConflict
		}
	}
	id := m.nextOrderID
	m.nextOrderID++
	order.ID = id
	m.orders[id] = &order
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, order SalesOrder) error {
	if _, ok := m.orders[id]; !ok {
		return httpx.ErrNotFound
	}
	order.ID = id
	m.orders[id] = &order
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockRepository) InsertLine(ctx context.Context, line SalesOrderLine) (int64, error) {
	if m.insertLineError != nil {
		return 0, m.insertLineError
	}
	id := m.nextLineID
	m.nextLineID++
	line.ID = id
	m.lines[line.SalesOrderID] = append(m.lines[line.SalesOrderID], line)
	return id, nil
}

func (m *mockRepository) DeleteLines(ctx context.Context, orderID int64) error {
	delete(m.lines, orderID)
	return nil
}

func (m *mockRepository) OrderNumbersWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	for _, o := range m.orders {
		if strings.HasPrefix(o.OrderNumber, prefix) {
			numbers = append(numbers, o.OrderNumber)
		}
	}
	return numbers, nil
}

func (m *mockRepository) AcquireNumberingLock(ctx context.Context, key string) error {
	m.lockKeys = append(m.lockKeys, key)
	return nil
}

func (m *mockRepository) AvailableItems(ctx context.Context) ([]AvailableItem, error) {
	var items []AvailableItem
	for id, status := range m.itemStatus {
		if status == "IN_STOCK" {
			items = append(items, AvailableItem{ID: id})
		}
	}
	return items, nil
}

func (m *mockRepository) MarkItemsSold(ctx context.Context, itemIDs []int64) error {
	if m.markSoldError != nil {
		return m.markSoldError
	}
	m.markSoldCalls++
	for _, id := range itemIDs {
		m.itemStatus[id] = "SOLD"
	}
	return nil
}

func (m *mockRepository) RestockItems(ctx context.Context, itemIDs []int64) error {
	m.restockCalls++
	for _, id := range itemIDs {
		m.itemStatus[id] = "IN_STOCK"
	}
	return nil
}

func (m *mockRepository) RestockSoldItems(ctx context.Context, itemIDs []int64) error {
	m.restockSoldCalls++
	for _, id := range itemIDs {
		if m.itemStatus[id] == "SOLD" {
			m.itemStatus[id] = "IN_STOCK"
		}
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	}
}

func newTestService(m *mockRepository) *Service {
	svc := NewService(m)
	svc.now = fixedClock()
	return svc
}

func draftWithLines(lines ...LineDraft) OrderDraft {
	return OrderDraft{
		CustomerID: 7,
		OrderDate:  time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC),
		Lines:      lines,
	}
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateComputesTotalsAndGeneratesNumber(t *testing.T) {
	m := newMockRepository()
	m.itemStatus[1] = "IN_STOCK"
	m.itemStatus[2] = "IN_STOCK"
	svc := newTestService(m)

	draft := draftWithLines(
		LineDraft{ItemID: 1, Price: 400, Cost: 250},
		LineDraft{ItemID: 2, Price: 300, Cost: 150},
	)

	order, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, "SO-2026-001", order.OrderNumber)
	assert.Equal(t, SalesOrderStatusPending, order.Status)
	assert.Equal(t, 700.0, order.TotalAmount)
	assert.Equal(t, 400.0, order.TotalCost)
	assert.Equal(t, 300.0, order.GrossProfit)
	assert.Len(t, order.Lines, 2)

	// Pending orders leave inventory alone.
	assert.Equal(t, "IN_STOCK", m.itemStatus[1])
	assert.Equal(t, "IN_STOCK", m.itemStatus[2])
	assert.Equal(t, 0, m.markSoldCalls)

	// Generation ran under the year-scoped lock.
	require.Len(t, m.lockKeys, 1)
	assert.Equal(t, "numbering:SO-2026-", m.lockKeys[0])
}

func TestCreateSequencesWithinYear(t *testing.T) {
	m := newMockRepository()
	svc := newTestService(m)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), draftWithLines(LineDraft{ItemID: int64(i + 1), Price: 100}))
		require.NoError(t, err)
	}

	numbers, err := m.OrderNumbersWithPrefix(context.Background(), "SO-2026-")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"SO-2026-001", "SO-2026-002", "SO-2026-003"}, numbers)
}

func TestCreateKeepsExplicitOrderNumber(t *testing.T) {
	m := newMockRepository()
	svc := newTestService(m)

	draft := draftWithLines(LineDraft{ItemID: 1, Price: 100})
	draft.OrderNumber = "SO-2025-042"

	order, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "SO-2025-042", order.OrderNumber)
	assert.Empty(t, m.lockKeys)
}

func TestCreateCompletedMarksItemsSold(t *testing.T) {
	m := newMockRepository()
	m.itemStatus[5] = "IN_STOCK"
	svc := newTestService(m)

	draft := draftWithLines(LineDraft{ItemID: 5, Price: 28000, Cost: 8200})
	draft.Status = SalesOrderStatusCompleted

	order, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, SalesOrderStatusCompleted, order.Status)
	assert.Equal(t, "SOLD", m.itemStatus[5])
}

func TestCreateRejectsEmptyLines(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Create(context.Background(), OrderDraft{
		CustomerID: 7,
		OrderDate:  time.Now(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Create(context.Background(), draftWithLines(LineDraft{ItemID: 1, Price: -5}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateAllowsNegativeGrossProfit(t *testing.T) {
	m := newMockRepository()
	svc := newTestService(m)

	order, err := svc.Create(context.Background(), draftWithLines(LineDraft{ItemID: 1, Price: 100, Cost: 180}))
	require.NoError(t, err)
	assert.Equal(t, -80.0, order.GrossProfit)
}

func TestCreateRollsBackOnLineFailure(t *testing.T) {
	m := newMockRepository()
	m.insertLineError = errors.New("boom")
	svc := newTestService(m)

	_, err := svc.Create(context.Background(), draftWithLines(LineDraft{ItemID: 1, Price: 100}))
	require.Error(t, err)
}

// ============================================================================
// UPDATE: STATUS TRANSITIONS
// ============================================================================

func seedOrder(t *testing.T, svc *Service, m *mockRepository, status SalesOrderStatus, lines ...LineDraft) *SalesOrder {
	t.Helper()
	draft := draftWithLines(lines...)
	draft.Status = status
	order, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	return order
}

func TestUpdateTransitionToCompletedMarksSold(t *testing.T) {
	m := newMockRepository()
	m.itemStatus[1] = "IN_STOCK"
	svc := newTestService(m)

	order := seedOrder(t, svc, m, SalesOrderStatusPending, LineDraft{ItemID: 1, Price: 400, Cost: 250})

	draft := draftWithLines(LineDraft{ItemID: 1, Price: 400, Cost: 250})
	draft.Status = SalesOrderStatusCompleted

	updated, err := svc.Update(context.Background(), order.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, SalesOrderStatusCompleted, updated.Status)
	assert.Equal(t, "SOLD", m.itemStatus[1])
	assert.Equal(t, 1, m.markSoldCalls)
}

func TestUpdateResaveCompletedDoesNotTouchItems(t *testing.T) {
	m := newMockRepository()
	m.itemStatus[1] = "IN_STOCK"
	svc := newTestService(m)

	order := seedOrder(t, svc, m, SalesOrderStatusCompleted, LineDraft{ItemID: 1, Price: 400, Cost: 250})
	require.Equal(t, 1, m.markSoldCalls)

	// Simulate an operator flipping the unit back by hand before the re-save.
	m.itemStatus[1] = "RESERVED"

	draft := draftWithLines(LineDraft{ItemID: 1, Price: 400, Cost: 250})
	draft.Status = SalesOrderStatusCompleted
	draft.OrderNumber = order.OrderNumber

	_, err := svc.Update(context.Background(), order.ID, draft)
	require.NoError(t, err)

	assert.Equal(t, "RESERVED", m.itemStatus[1])
	assert.Equal(t, 1, m.markSoldCalls)
}

func TestUpdateTransitionToCancelledRestocks(t *testing.T) {
	m := newMockRepository()
	m.itemStatus[1] = "IN_STOCK"
	svc := newTestService(m)

	order := seedOrder(t, svc, m, SalesOrderStatusCompleted, LineDraft{ItemID: 1, Price: 400, Cost: 250})
	require.Equal(t, "SOLD", m.itemStatus[1])

	draft := draftWithLines(LineDraft{ItemID: 1, Price: 400, Cost: 250})
	draft.Status = SalesOrderStatusCancelled
	draft.OrderNumber = order.OrderNumber

	updated, err := svc.Update(context.Background(), order.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, SalesOrderStatusCancelled, updated.Status)
	assert.Equal(t, "IN_STOCK", m.itemStatus[1])
}

func TestUpdateReplacesLineCollection(t *testing.T) {
	m := newMockRepository()
	svc := newTestService(m)

	order := seedOrder(t, svc, m, SalesOrderStatusPending,
		LineDraft{ItemID: 1, Price: 400, Cost: 250},
		LineDraft{ItemID: 2, Price: 300, Cost: 150},
	)

	draft := draftWithLines(LineDraft{ItemID: 3, Price: 900, Cost: 500})
	draft.OrderNumber = order.OrderNumber

	updated, err := svc.Update(context.Background(), order.ID, draft)
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, int64(3), updated.Lines[0].ItemID)
	assert.Equal(t, 900.0, updated.TotalAmount)
	assert.Equal(t, 400.0, updated.GrossProfit)
}

func TestUpdateMissingOrder(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Update(context.Background(), 99, draftWithLines(LineDraft{ItemID: 1, Price: 100}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}

// ============================================================================
// DELETE
// ============================================================================

func TestDeleteRestocksOnlySoldItems(t *testing.T) {
	m := newMockRepository()
	m.itemStatus[1] = "IN_STOCK"
	m.itemStatus[2] = "IN_STOCK"
	svc := newTestService(m)

	order := seedOrder(t, svc, m, SalesOrderStatusCompleted,
		LineDraft{ItemID: 1, Price: 400, Cost: 250},
		LineDraft{ItemID: 2, Price: 300, Cost: 150},
	)
	require.Equal(t, "SOLD", m.itemStatus[1])

	// A unit reserved through another path must survive the delete.
	m.itemStatus[2] = "RESERVED"

	deleted, err := svc.Delete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, deleted.OrderNumber)

	assert.Equal(t, "IN_STOCK", m.itemStatus[1])
	assert.Equal(t, "RESERVED", m.itemStatus[2])
	assert.NotContains(t, m.orders, order.ID)
}

func TestDeleteCancelledOrderSkipsRestock(t *testing.T) {
	m := newMockRepository()
	m.itemStatus[1] = "IN_STOCK"
	svc := newTestService(m)

	order := seedOrder(t, svc, m, SalesOrderStatusCancelled, LineDraft{ItemID: 1, Price: 400, Cost: 250})

	_, err := svc.Delete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.restockSoldCalls)
}

func TestDeleteMissingOrder(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}

// ============================================================================
// NUMBER PREVIEW
// ============================================================================

func TestNextOrderNumberPreview(t *testing.T) {
	m := newMockRepository()
	svc := newTestService(m)

	number, err := svc.NextOrderNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SO-2026-001", number)

	_, err = svc.Create(context.Background(), draftWithLines(LineDraft{ItemID: 1, Price: 100}))
	require.NoError(t, err)

	number, err = svc.NextOrderNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SO-2026-002", number)

	// Preview never takes the numbering lock.
	assert.Len(t, m.lockKeys, 1)
}

func TestNextOrderNumberIgnoresOtherYears(t *testing.T) {
	m := newMockRepository()
	svc := newTestService(m)

	draft := draftWithLines(LineDraft{ItemID: 1, Price: 100})
	draft.OrderNumber = "SO-2025-117"
	_, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)

	number, err := svc.NextOrderNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SO-2026-001", number)
}
