package ledger

import (
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
)

// Snapshot is the complete in-memory state the processor operates on: the
// product catalog, the customer list, transaction history (newest-first),
// and the store-credit ledger (newest-first). A snapshot is treated as
// immutable; applying a transaction produces a new one.
type Snapshot struct {
	Products     []entity.Product
	Customers    []entity.Customer
	Transactions []entity.Transaction
	CreditLedger []entity.CreditLedgerEntry
}

// Result is the outcome of a successfully applied transaction. Snapshot is
// the full replacement state; the remaining fields are the touched rows so
// a persistence layer can write just the delta in one atomic step.
type Result struct {
	Snapshot Snapshot

	// Transaction is the accepted record, settlement-annotated for returns.
	Transaction entity.Transaction

	// UpdatedProducts holds products whose stock or totalSold changed.
	UpdatedProducts []entity.Product

	// UpdatedCustomer is the customer with balances applied, nil if the
	// transaction carried no customer reference.
	UpdatedCustomer *entity.Customer

	// LedgerEntries are the credit ledger rows issued by this transaction,
	// newest-first.
	LedgerEntries []entity.CreditLedgerEntry
}

// ProductByID returns the product with the given id, or nil.
func (s Snapshot) ProductByID(id uuid.UUID) *entity.Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// CustomerByID returns the customer with the given id, or nil.
func (s Snapshot) CustomerByID(id uuid.UUID) *entity.Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return &s.Customers[i]
		}
	}
	return nil
}
