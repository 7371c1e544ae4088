package ledger

import (
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

// ResolveReturnSettlement splits a return amount between the customer's
// outstanding due and the excess channel. The due is always paid down first;
// whatever remains is either issued as store credit or refunded in cash,
// per the requested mode. An unknown or empty mode falls back to store
// credit. All amounts are in minor units and non-negative.
func ResolveReturnSettlement(returnAmount, currentDue int64, mode enum.ExcessMode) entity.ReturnSettlement {
	if returnAmount < 0 {
		returnAmount = -returnAmount
	}
	if currentDue < 0 {
		currentDue = 0
	}
	if !mode.Valid() {
		mode = enum.ExcessModeStoreCredit
	}

	applied := returnAmount
	if currentDue < applied {
		applied = currentDue
	}
	excess := returnAmount - applied

	settlement := entity.ReturnSettlement{
		AppliedToDue: applied,
		ExcessMode:   mode,
	}
	switch mode {
	case enum.ExcessModeCashRefund:
		settlement.RefundedCash = excess
	default:
		settlement.CreditedAmount = excess
	}
	return settlement
}
