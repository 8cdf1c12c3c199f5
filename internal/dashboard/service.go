package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const recentOrderLimit = 10

// Service assembles the admin dashboard.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the dashboard service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Overview gathers the headline stats and the recent-order feed. The five
// aggregates are independent reads, so they run concurrently.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var overview Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		revenue, err := s.repo.MonthlyRevenue(ctx, monthStart)
		if err != nil {
			return fmt.Errorf("monthly revenue: %w", err)
		}
		overview.Stats.MonthlyRevenue = revenue
		return nil
	})
	g.Go(func() error {
		profit, err := s.repo.TotalGrossProfit(ctx)
		if err != nil {
			return fmt.Errorf("gross profit: %w", err)
		}
		overview.Stats.TotalGrossProfit = profit
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.ItemsInStock(ctx)
		if err != nil {
			return fmt.Errorf("items in stock: %w", err)
		}
		overview.Stats.ItemsInStock = count
		return nil
	})
	g.Go(func() error {
		count, err := s.repo.CustomerCount(ctx)
		if err != nil {
			return fmt.Errorf("customer count: %w", err)
		}
		overview.Stats.CustomerCount = count
		return nil
	})
	g.Go(func() error {
		orders, err := s.repo.RecentOrders(ctx, recentOrderLimit)
		if err != nil {
			return fmt.Errorf("recent orders: %w", err)
		}
		overview.RecentOrders = orders
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if overview.RecentOrders == nil {
		overview.RecentOrders = []RecentOrder{}
	}
	return &overview, nil
}
