package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

// Apply runs one transaction against a snapshot and returns the resulting
// state. The input snapshot is never mutated: on rejection it remains the
// current state, on success Result.Snapshot replaces it. Steps run in a
// fixed order - structural checks, the validation rule set, stock movement,
// customer balance movement, history append - and the first failing step
// rejects the whole transaction.
func Apply(tx entity.Transaction, snap Snapshot, now time.Time) (*Result, error) {
	if err := validateStructure(tx); err != nil {
		return nil, err
	}
	if err := ValidatePaymentMethod(tx); err != nil {
		return nil, err
	}
	if err := ValidateStoreCreditUse(tx); err != nil {
		return nil, err
	}
	if err := ValidateFinancials(tx); err != nil {
		return nil, err
	}
	if err := ValidateInventory(tx, snap); err != nil {
		return nil, err
	}

	next := cloneSnapshot(snap)
	result := &Result{}

	var customer *entity.Customer
	if tx.CustomerID != nil {
		customer = next.CustomerByID(*tx.CustomerID)
		if customer == nil {
			return nil, newErrorDetail(CodeUnknownCustomer, "transaction references an unknown customer", map[string]any{
				"customer_id": tx.CustomerID.String(),
			})
		}
		tx.CustomerName = customer.Name
	} else if tx.Type == enum.TransactionTypePayment {
		return nil, newError(CodeUnknownCustomer, "a due payment requires a customer")
	}

	if tx.Type != enum.TransactionTypePayment {
		result.UpdatedProducts = moveStock(tx, &next)
		tx.Subtotal, tx.Discount, tx.Tax, tx.Total = expectedTotal(tx)
	}

	switch tx.Type {
	case enum.TransactionTypeSale:
		if customer != nil {
			applied := int64(0)
			if tx.UseStoreCredit {
				applied = customer.StoreCredit
				if tx.Total < applied {
					applied = tx.Total
				}
			}
			if applied > 0 {
				customer.StoreCredit -= applied
				result.LedgerEntries = append(result.LedgerEntries, newLedgerEntry(tx, customer, enum.LedgerEntryTypeCreditUsed, applied, now))
			}
			tx.StoreCreditApplied = applied

			payable := tx.Total - applied
			if tx.PaymentMethod == enum.PaymentMethodCredit {
				customer.TotalDue += payable
			}
			customer.TotalSpend += tx.Total
			customer.VisitCount++
			visit := now
			customer.LastVisit = &visit
		}

	case enum.TransactionTypeReturn:
		amount := -tx.Total
		settlement := resolveReturn(tx, customer, amount)
		if err := checkSettlement(tx, settlement); err != nil {
			return nil, err
		}
		if customer != nil {
			customer.TotalDue -= settlement.AppliedToDue
			if customer.TotalDue < 0 {
				customer.TotalDue = 0
			}
			if settlement.CreditedAmount > 0 {
				customer.StoreCredit += settlement.CreditedAmount
				result.LedgerEntries = append(result.LedgerEntries, newLedgerEntry(tx, customer, enum.LedgerEntryTypeCreditIssued, settlement.CreditedAmount, now))
			}
			customer.TotalSpend -= amount
			if customer.TotalSpend < 0 {
				customer.TotalSpend = 0
			}
		}
		settlement.TransactionID = tx.ID
		settlement.CreatedAt = now
		tx.Settlement = &settlement
		tx.ReturnExcessMode = &settlement.ExcessMode

	case enum.TransactionTypePayment:
		remaining := customer.TotalDue - tx.Total
		if remaining < -ToleranceMinor {
			return nil, newErrorDetail(CodePaymentExceedsDue, "payment exceeds outstanding due", map[string]any{
				"outstanding_due": FromMinor(customer.TotalDue),
				"payment":         FromMinor(tx.Total),
			})
		}
		if remaining < 0 {
			remaining = 0
		}
		customer.TotalDue = remaining
		visit := now
		customer.LastVisit = &visit
	}

	if customer != nil {
		if err := checkBalances(customer); err != nil {
			return nil, err
		}
		result.UpdatedCustomer = customer
	}

	if tx.InvoiceNo == "" {
		tx.InvoiceNo = fmt.Sprintf("INV-%s", uuid.New().String()[:8])
	}
	tx.CreatedAt = now

	next.CreditLedger = append(result.LedgerEntries, next.CreditLedger...)
	next.Transactions = append([]entity.Transaction{tx}, next.Transactions...)

	result.Snapshot = next
	result.Transaction = tx
	return result, nil
}

func validateStructure(tx entity.Transaction) error {
	if tx.ID == uuid.Nil {
		return newError(CodeMissingTransactionID, "transaction id is required")
	}
	if tx.Date.IsZero() {
		return newError(CodeMissingTransactionDate, "transaction date is required")
	}
	if !tx.Type.Valid() {
		return newErrorDetail(CodeInvalidTransactionType, "unknown transaction type", map[string]any{
			"type": string(tx.Type),
		})
	}
	return nil
}

// moveStock applies item quantities to the catalog: a sale consumes stock
// and accrues totalSold, a return restores stock and rolls totalSold back.
// Returns the touched products.
func moveStock(tx entity.Transaction, snap *Snapshot) []entity.Product {
	touched := make(map[uuid.UUID]bool)
	var updated []entity.Product
	for _, item := range tx.Items {
		product := snap.ProductByID(item.ProductID)
		switch tx.Type {
		case enum.TransactionTypeSale:
			product.Stock -= item.Quantity
			product.TotalSold += item.Quantity
		case enum.TransactionTypeReturn:
			product.Stock += item.Quantity
			product.TotalSold -= item.Quantity
			if product.TotalSold < 0 {
				product.TotalSold = 0
			}
		}
		if !touched[product.ID] {
			touched[product.ID] = true
		}
	}
	for id := range touched {
		updated = append(updated, *snap.ProductByID(id))
	}
	return updated
}

// resolveReturn settles a return's value. With no customer attached there
// is no due to clear and no account to credit, so the whole amount is a
// cash refund regardless of the requested mode.
func resolveReturn(tx entity.Transaction, customer *entity.Customer, amount int64) entity.ReturnSettlement {
	if customer == nil {
		return entity.ReturnSettlement{
			RefundedCash: amount,
			ExcessMode:   enum.ExcessModeCashRefund,
		}
	}
	mode := enum.ExcessModeStoreCredit
	if tx.ReturnExcessMode != nil {
		mode = *tx.ReturnExcessMode
	}
	return ResolveReturnSettlement(amount, customer.TotalDue, mode)
}

// checkSettlement cross-checks a caller-supplied settlement against the
// resolved one. A client that precomputed the split must agree with the
// ledger within tolerance, otherwise its view of the balances is stale.
func checkSettlement(tx entity.Transaction, resolved entity.ReturnSettlement) error {
	supplied := tx.Settlement
	if supplied == nil {
		return nil
	}
	if !WithinTolerance(supplied.AppliedToDue, resolved.AppliedToDue) ||
		!WithinTolerance(supplied.RefundedCash, resolved.RefundedCash) ||
		!WithinTolerance(supplied.CreditedAmount, resolved.CreditedAmount) {
		return newErrorDetail(CodeSettlementMismatch, "supplied settlement does not match the resolved one", map[string]any{
			"supplied": map[string]any{
				"applied_to_due":  FromMinor(supplied.AppliedToDue),
				"refunded_cash":   FromMinor(supplied.RefundedCash),
				"credited_amount": FromMinor(supplied.CreditedAmount),
			},
			"expected": map[string]any{
				"applied_to_due":  FromMinor(resolved.AppliedToDue),
				"refunded_cash":   FromMinor(resolved.RefundedCash),
				"credited_amount": FromMinor(resolved.CreditedAmount),
			},
		})
	}
	return nil
}

// checkBalances rejects balances that went meaningfully negative and clamps
// sub-tolerance drift to zero.
func checkBalances(customer *entity.Customer) error {
	if customer.TotalDue < -ToleranceMinor {
		return newErrorDetail(CodeNegativeDue, "customer due would go negative", map[string]any{
			"total_due": FromMinor(customer.TotalDue),
		})
	}
	if customer.TotalDue < 0 {
		customer.TotalDue = 0
	}
	if customer.StoreCredit < -ToleranceMinor {
		return newErrorDetail(CodeNegativeCredit, "customer store credit would go negative", map[string]any{
			"store_credit": FromMinor(customer.StoreCredit),
		})
	}
	if customer.StoreCredit < 0 {
		customer.StoreCredit = 0
	}
	return nil
}

func newLedgerEntry(tx entity.Transaction, customer *entity.Customer, entryType enum.LedgerEntryType, amount int64, now time.Time) entity.CreditLedgerEntry {
	note := "store credit applied to sale"
	if entryType == enum.LedgerEntryTypeCreditIssued {
		note = "store credit issued from return"
	}
	return entity.CreditLedgerEntry{
		ID:            uuid.New(),
		UserID:        tx.UserID,
		CustomerID:    customer.ID,
		TransactionID: tx.ID,
		Type:          entryType,
		Amount:        amount,
		BalanceAfter:  customer.StoreCredit,
		Note:          note,
		CreatedAt:     now,
	}
}

// cloneSnapshot copies the snapshot deeply enough that mutations to the
// clone's products and customers cannot leak into the input. Transactions
// and ledger entries are immutable history, so their backing arrays are
// shared but never written through.
func cloneSnapshot(snap Snapshot) Snapshot {
	next := Snapshot{
		Products:     make([]entity.Product, len(snap.Products)),
		Customers:    make([]entity.Customer, len(snap.Customers)),
		Transactions: snap.Transactions,
		CreditLedger: snap.CreditLedger,
	}
	copy(next.Products, snap.Products)
	copy(next.Customers, snap.Customers)
	return next
}
