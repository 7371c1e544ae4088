package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/apperror"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// TransactionService drives the transaction processor: it loads the
// store's state, runs the pure ledger rules against it, and persists the
// outcome atomically.
type TransactionService struct {
	ledgerRepo      repository.LedgerRepository
	transactionRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(ledgerRepo repository.LedgerRepository, transactionRepo repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		ledgerRepo:      ledgerRepo,
		transactionRepo: transactionRepo,
	}
}

// TransactionItemInput is one line item of a sale or return, amounts in
// major currency units as sent by clients
type TransactionItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	SellPrice float64
	Discount  float64
}

// ProcessTransactionInput represents a submitted sale, return, or payment
type ProcessTransactionInput struct {
	UserID           uuid.UUID
	Type             enum.TransactionType
	Date             time.Time
	CustomerID       *uuid.UUID
	PaymentMethod    enum.PaymentMethod
	UseStoreCredit   bool
	TaxRate          float64
	TaxLabel         string
	Total            float64
	ReturnExcessMode *enum.ExcessMode
	Items            []TransactionItemInput
}

// ProcessTransactionOutput carries the accepted transaction and the
// customer balances after it
type ProcessTransactionOutput struct {
	Transaction entity.Transaction
	Customer    *entity.Customer
}

// ProcessTransaction validates and applies one transaction. Rejections come
// back as *ledger.Error; nothing is written unless every step passed.
func (s *TransactionService) ProcessTransaction(ctx context.Context, input *ProcessTransactionInput) (*ProcessTransactionOutput, error) {
	snap, err := s.ledgerRepo.LoadSnapshot(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	tx := entity.Transaction{
		ID:               uuid.New(),
		UserID:           input.UserID,
		Date:             input.Date,
		Type:             input.Type,
		CustomerID:       input.CustomerID,
		PaymentMethod:    input.PaymentMethod,
		UseStoreCredit:   input.UseStoreCredit,
		TaxRate:          input.TaxRate,
		TaxLabel:         input.TaxLabel,
		Total:            ledger.ToMinor(input.Total),
		ReturnExcessMode: input.ReturnExcessMode,
	}
	for _, item := range input.Items {
		name := ""
		if p := snap.ProductByID(item.ProductID); p != nil {
			name = p.Name
		}
		tx.Items = append(tx.Items, entity.TransactionItem{
			ID:        uuid.New(),
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  item.Quantity,
			SellPrice: ledger.ToMinor(item.SellPrice),
			Discount:  ledger.ToMinor(item.Discount),
		})
	}

	result, err := ledger.Apply(tx, snap, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveResult(ctx, input.UserID, result); err != nil {
		return nil, err
	}

	return &ProcessTransactionOutput{
		Transaction: result.Transaction,
		Customer:    result.UpdatedCustomer,
	}, nil
}

// GetTransaction retrieves one transaction with its items and settlement
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.UserID != userID {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// ListTransactions lists history newest-first with filters and pagination
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}
