package orders

import (
	"fmt"

	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/httpx"
)

// ValidateDraft enforces the shape of an order draft before anything is
// persisted. Referential integrity of the customer and item identifiers is
// left to the store; the manager does not pre-validate foreign keys.
func ValidateDraft(draft OrderDraft) error {
	if draft.CustomerID <= 0 {
		return fmt.Errorf("%w: customer is required", httpx.ErrValidation)
	}
	if len(draft.Lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", httpx.ErrValidation)
	}
	if draft.OrderDate.IsZero() {
		return fmt.Errorf("%w: order date is required", httpx.ErrValidation)
	}
	if draft.Status != "" && !draft.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, draft.Status)
	}
	for i, line := range draft.Lines {
		if line.ItemID <= 0 {
			return fmt.Errorf("%w: line %d: item is required", httpx.ErrValidation, i+1)
		}
		if line.Price < 0 || line.Cost < 0 {
			return fmt.Errorf("%w: line %d: price and cost must not be negative", httpx.ErrValidation, i+1)
		}
	}
	return nil
}
