package orders

import (
	"context"
	"fmt"
	"time"

	salesshared "github.com/jiudi-gallery/jiudi-gallery/internal/sales/shared"
	"github.com/jiudi-gallery/jiudi-gallery/internal/shared"
)

// Service is the order lifecycle manager. It owns the status state machine
// and keeps inventory item status in sync as orders move through it:
//
//	status -> COMPLETED   every line item becomes SOLD
//	status -> CANCELLED   every line item returns to IN_STOCK
//	delete, not CANCELLED line items currently SOLD return to IN_STOCK
//
// Side effects fire only on a genuine transition into the state; re-saving
// an already COMPLETED order does not touch item status again.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the order service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates and persists a new order with its lines. When the draft
// carries no order number one is generated under the numbering lock inside
// the same transaction that inserts the row.
func (s *Service) Create(ctx context.Context, draft OrderDraft) (*SalesOrder, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	status := draft.Status
	if status == "" {
		status = SalesOrderStatusPending
	}

	totals := salesshared.CalculateOrderTotals(lineAmounts(draft.Lines))

	order := SalesOrder{
		OrderNumber:  draft.OrderNumber,
		CustomerID:   draft.CustomerID,
		OrderDate:    draft.OrderDate,
		DeliveryDate: draft.DeliveryDate,
		PaymentDate:  draft.PaymentDate,
		Status:       status,
		ShippingAddr: draft.ShippingAddr,
		Notes:        draft.Notes,
		TotalAmount:  totals.TotalAmount,
		TotalCost:    totals.TotalCost,
		GrossProfit:  totals.GrossProfit,
	}

	var orderID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if order.OrderNumber == "" {
			number, err := generateOrderNumber(ctx, repo, s.now)
			if err != nil {
				return err
			}
			order.OrderNumber = number
		}

		id, err := repo.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		orderID = id

		for _, line := range draft.Lines {
			_, err := repo.InsertLine(ctx, SalesOrderLine{
				SalesOrderID: orderID,
				ItemID:       line.ItemID,
				Price:        line.Price,
				Cost:         line.Cost,
			})
			if err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
		}

		if status == SalesOrderStatusCompleted {
			if err := repo.MarkItemsSold(ctx, itemIDs(draft.Lines)); err != nil {
				return fmt.Errorf("mark items sold: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, orderID)
}

// Update replaces the order's fields and its entire line collection, then
// applies inventory side effects for a genuine status transition.
func (s *Service) Update(ctx context.Context, id int64, draft OrderDraft) (*SalesOrder, error) {
	previous, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	status := draft.Status
	if status == "" {
		status = SalesOrderStatusPending
	}

	totals := salesshared.CalculateOrderTotals(lineAmounts(draft.Lines))

	order := SalesOrder{
		OrderNumber:  draft.OrderNumber,
		CustomerID:   draft.CustomerID,
		OrderDate:    draft.OrderDate,
		DeliveryDate: draft.DeliveryDate,
		PaymentDate:  draft.PaymentDate,
		Status:       status,
		ShippingAddr: draft.ShippingAddr,
		Notes:        draft.Notes,
		TotalAmount:  totals.TotalAmount,
		TotalCost:    totals.TotalCost,
		GrossProfit:  totals.GrossProfit,
	}
	if order.OrderNumber == "" {
		order.OrderNumber = previous.OrderNumber
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if err := repo.DeleteLines(ctx, id); err != nil {
			return fmt.Errorf("delete order lines: %w", err)
		}
		for _, line := range draft.Lines {
			_, err := repo.InsertLine(ctx, SalesOrderLine{
				SalesOrderID: id,
				ItemID:       line.ItemID,
				Price:        line.Price,
				Cost:         line.Cost,
			})
			if err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
		}

		// Edge-triggered: re-saving an order that already holds the target
		// status must not re-issue the item update.
		if status == SalesOrderStatusCompleted && previous.Status != SalesOrderStatusCompleted {
			if err := repo.MarkItemsSold(ctx, itemIDs(draft.Lines)); err != nil {
				return fmt.Errorf("mark items sold: %w", err)
			}
		}
		if status == SalesOrderStatusCancelled && previous.Status != SalesOrderStatusCancelled {
			if err := repo.RestockItems(ctx, itemIDs(draft.Lines)); err != nil {
				return fmt.Errorf("restock items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// Delete removes an order and its lines. Unless the order was already
// cancelled (which restocked its items when the cancellation happened),
// line items still marked SOLD revert to IN_STOCK. Items in any other
// status are left untouched so a unit reserved through another path is
// never released by accident.
func (s *Service) Delete(ctx context.Context, id int64) (*DeletedOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if order.Status != SalesOrderStatusCancelled && len(order.Lines) > 0 {
			ids := make([]int64, 0, len(order.Lines))
			for _, line := range order.Lines {
				ids = append(ids, line.ItemID)
			}
			if err := repo.RestockSoldItems(ctx, ids); err != nil {
				return fmt.Errorf("restock sold items: %w", err)
			}
		}
		if err := repo.DeleteLines(ctx, id); err != nil {
			return fmt.Errorf("delete order lines: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DeletedOrder{ID: order.ID, OrderNumber: order.OrderNumber}, nil
}

// Get returns one order with its lines and display fields expanded.
func (s *Service) Get(ctx context.Context, id int64) (*SalesOrder, error) {
	return s.repo.Get(ctx, id)
}

// List returns orders newest first with customer name and line count.
func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]SalesOrderWithCustomer, int, error) {
	return s.repo.List(ctx, req)
}

// NextOrderNumber previews the next number for the current year without
// reserving it. The authoritative generation happens inside Create's
// transaction; two previews may race, the unique constraint is the backstop.
func (s *Service) NextOrderNumber(ctx context.Context) (string, error) {
	year := currentYear(s.now)
	existing, err := s.repo.OrderNumbersWithPrefix(ctx, YearPrefix(OrderNumberPrefix, year))
	if err != nil {
		return "", fmt.Errorf("scan order numbers: %w", err)
	}
	return FormatOrderNumber(OrderNumberPrefix, year, nextSequence(existing)), nil
}

// AvailableItems lists IN_STOCK items for the line-item picker.
func (s *Service) AvailableItems(ctx context.Context) ([]AvailableItem, error) {
	return s.repo.AvailableItems(ctx)
}

func generateOrderNumber(ctx context.Context, repo Repository, now func() time.Time) (string, error) {
	year := currentYear(now)
	prefix := YearPrefix(OrderNumberPrefix, year)
	if err := repo.AcquireNumberingLock(ctx, shared.NumberingLockKey(prefix)); err != nil {
		return "", fmt.Errorf("acquire numbering lock: %w", err)
	}
	existing, err := repo.OrderNumbersWithPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("scan order numbers: %w", err)
	}
	return FormatOrderNumber(OrderNumberPrefix, year, nextSequence(existing)), nil
}

func lineAmounts(lines []LineDraft) []salesshared.LineAmounts {
	amounts := make([]salesshared.LineAmounts, 0, len(lines))
	for _, line := range lines {
		amounts = append(amounts, salesshared.LineAmounts{Price: line.Price, Cost: line.Cost})
	}
	return amounts
}

func itemIDs(lines []LineDraft) []int64 {
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}
	return ids
}
