package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	revenue     float64
	profit      float64
	inStock     int
	customers   int
	recent      []RecentOrder
	revenueFrom time.Time

	revenueError error
	recentError  error
}

func (m *mockRepository) MonthlyRevenue(ctx context.Context, monthStart time.Time) (float64, error) {
	if m.revenueError != nil {
		return 0, m.revenueError
	}
	m.revenueFrom = monthStart
	return m.revenue, nil
}

func (m *mockRepository) TotalGrossProfit(ctx context.Context) (float64, error) {
	return m.profit, nil
}

func (m *mockRepository) ItemsInStock(ctx context.Context) (int, error) {
	return m.inStock, nil
}

func (m *mockRepository) CustomerCount(ctx context.Context) (int, error) {
	return m.customers, nil
}

func (m *mockRepository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	if m.recentError != nil {
		return nil, m.recentError
	}
	if len(m.recent) > limit {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

func TestOverviewAggregates(t *testing.T) {
	m := &mockRepository{
		revenue:   86000,
		profit:    31200,
		inStock:   17,
		customers: 42,
		recent: []RecentOrder{
			{ID: 3, OrderNumber: "SO-2026-003", CustomerName: "王小姐", TotalAmount: 28000},
			{ID: 2, OrderNumber: "SO-2026-002", CustomerName: "半山咖啡", TotalAmount: 58000},
		},
	}
	svc := NewService(m)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 29, 15, 30, 0, 0, time.UTC)
	}

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 86000.0, overview.Stats.MonthlyRevenue)
	assert.Equal(t, 31200.0, overview.Stats.TotalGrossProfit)
	assert.Equal(t, 17, overview.Stats.ItemsInStock)
	assert.Equal(t, 42, overview.Stats.CustomerCount)
	require.Len(t, overview.RecentOrders, 2)

	// Revenue is scoped to the first of the current month.
	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), m.revenueFrom)
}

func TestOverviewEmptyFeedIsNotNil(t *testing.T) {
	svc := NewService(&mockRepository{})
	svc.now = time.Now

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, overview.RecentOrders)
	assert.Empty(t, overview.RecentOrders)
}

func TestOverviewPropagatesQueryError(t *testing.T) {
	svc := NewService(&mockRepository{revenueError: errors.New("boom")})
	svc.now = time.Now

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}
