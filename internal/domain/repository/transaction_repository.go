package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// TransactionFilterParams contains filtering parameters for history queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       enum.TransactionType
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Search     string
}

// TransactionRepository defines the interface for transaction history
// queries. History rows are written only through LedgerRepository.
type TransactionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// List returns transactions newest-first.
	List(ctx context.Context, userID uuid.UUID, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// ListAll returns the user's full history newest-first, unpaginated,
	// for snapshot loading and exports.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Transaction, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error)
}

// CreditLedgerRepository defines the interface for the append-only store
// credit audit trail.
type CreditLedgerRepository interface {
	// ListByCustomer returns a customer's ledger entries newest-first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CreditLedgerEntry, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.CreditLedgerEntry, error)
}

// LedgerRepository bridges the pure transaction processor and the database.
// LoadSnapshot materializes the state the processor validates against;
// SaveResult persists everything a processed transaction touched in one
// database transaction, so a mid-write failure leaves no partial state.
type LedgerRepository interface {
	LoadSnapshot(ctx context.Context, userID uuid.UUID) (ledger.Snapshot, error)
	SaveResult(ctx context.Context, userID uuid.UUID, result *ledger.Result) error
}
