package ledger

import (
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

// ApplyUpfrontPayment collects an amount against an upfront order's
// remaining balance and returns the updated order. A payment larger than
// the balance (beyond tolerance) is rejected rather than carried as
// negative remaining, and an order already cleared cannot collect more.
func ApplyUpfrontPayment(order entity.UpfrontOrder, amount int64) (entity.UpfrontOrder, error) {
	if amount <= 0 {
		return order, newErrorDetail(CodeInvalidUpfrontOrder, "payment amount must be positive", map[string]any{
			"amount": FromMinor(amount),
		})
	}
	if order.Status == enum.UpfrontStatusCleared || order.Remaining <= 0 {
		return order, newError(CodePaymentExceedsDue, "order is already cleared")
	}
	if amount > order.Remaining+ToleranceMinor {
		return order, newErrorDetail(CodePaymentExceedsDue, "payment exceeds remaining balance", map[string]any{
			"remaining": FromMinor(order.Remaining),
			"payment":   FromMinor(amount),
		})
	}

	order.AdvancePaid += amount
	remaining := order.TotalCost - order.AdvancePaid
	if remaining < 0 {
		remaining = 0
	}
	order.Remaining = remaining
	if remaining <= ToleranceMinor {
		order.Remaining = 0
		order.Status = enum.UpfrontStatusCleared
	} else {
		order.Status = enum.UpfrontStatusUnpaid
	}
	return order, nil
}
