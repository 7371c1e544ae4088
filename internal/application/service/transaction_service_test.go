package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
)

// fakeLedgerRepository keeps the store state in memory and records every
// SaveResult call so tests can assert what would have been persisted.
type fakeLedgerRepository struct {
	snap  ledger.Snapshot
	saved []*ledger.Result
}

func (f *fakeLedgerRepository) LoadSnapshot(ctx context.Context, userID uuid.UUID) (ledger.Snapshot, error) {
	return f.snap, nil
}

func (f *fakeLedgerRepository) SaveResult(ctx context.Context, userID uuid.UUID, result *ledger.Result) error {
	f.saved = append(f.saved, result)
	f.snap = result.Snapshot
	return nil
}

type fakeTransactionRepository struct {
	transactions []entity.Transaction
}

func (f *fakeTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			return &f.transactions[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTransactionRepository) List(ctx context.Context, userID uuid.UUID, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	return f.transactions, int64(len(f.transactions)), nil
}

func (f *fakeTransactionRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeTransactionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, tx := range f.transactions {
		if tx.CustomerID != nil && *tx.CustomerID == customerID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func newServiceFixture() (*TransactionService, *fakeLedgerRepository, uuid.UUID, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()

	ledgerRepo := &fakeLedgerRepository{
		snap: ledger.Snapshot{
			Products: []entity.Product{
				{ID: productID, UserID: userID, Name: "Rice 5kg", Barcode: "GEN-001", Category: "Grocery", SellPrice: 45000, Stock: 20},
			},
			Customers: []entity.Customer{
				{ID: customerID, UserID: userID, Name: "Meera", Phone: "9876501234"},
			},
		},
	}
	svc := NewTransactionService(ledgerRepo, &fakeTransactionRepository{})
	return svc, ledgerRepo, userID, customerID, productID
}

func TestProcessTransactionPersistsAcceptedSale(t *testing.T) {
	svc, ledgerRepo, userID, customerID, productID := newServiceFixture()

	output, err := svc.ProcessTransaction(context.Background(), &ProcessTransactionInput{
		UserID:        userID,
		Type:          enum.TransactionTypeSale,
		Date:          time.Date(2026, 4, 2, 11, 0, 0, 0, time.UTC),
		CustomerID:    &customerID,
		PaymentMethod: enum.PaymentMethodCash,
		Total:         900,
		Items: []TransactionItemInput{
			{ProductID: productID, Quantity: 2, SellPrice: 450},
		},
	})
	if err != nil {
		t.Fatalf("ProcessTransaction() error = %v", err)
	}

	if len(ledgerRepo.saved) != 1 {
		t.Fatalf("SaveResult calls = %d, want 1", len(ledgerRepo.saved))
	}
	if output.Transaction.Total != 90000 {
		t.Errorf("transaction total = %d, want 90000", output.Transaction.Total)
	}
	if output.Transaction.Items[0].Name != "Rice 5kg" {
		t.Errorf("item name = %q, want snapshot name", output.Transaction.Items[0].Name)
	}
	if output.Transaction.InvoiceNo == "" {
		t.Error("expected an invoice number to be assigned")
	}
	if output.Customer == nil || output.Customer.TotalSpend != 90000 {
		t.Errorf("customer spend not applied: %+v", output.Customer)
	}

	if got := ledgerRepo.snap.ProductByID(productID); got == nil || got.Stock != 18 {
		t.Errorf("persisted stock = %+v, want 18", got)
	}
}

func TestProcessTransactionRejectionWritesNothing(t *testing.T) {
	svc, ledgerRepo, userID, customerID, productID := newServiceFixture()

	_, err := svc.ProcessTransaction(context.Background(), &ProcessTransactionInput{
		UserID:        userID,
		Type:          enum.TransactionTypeSale,
		Date:          time.Date(2026, 4, 2, 11, 0, 0, 0, time.UTC),
		CustomerID:    &customerID,
		PaymentMethod: enum.PaymentMethodCash,
		Total:         11250,
		Items: []TransactionItemInput{
			{ProductID: productID, Quantity: 25, SellPrice: 450},
		},
	})
	if err == nil {
		t.Fatal("expected oversale to be rejected")
	}

	rejection := ledger.AsError(err)
	if rejection == nil {
		t.Fatalf("error = %v, want *ledger.Error", err)
	}
	if rejection.Code != ledger.CodeOversaleStock {
		t.Errorf("code = %s, want %s", rejection.Code, ledger.CodeOversaleStock)
	}
	if len(ledgerRepo.saved) != 0 {
		t.Errorf("SaveResult calls = %d, want 0", len(ledgerRepo.saved))
	}
	if got := ledgerRepo.snap.ProductByID(productID); got == nil || got.Stock != 20 {
		t.Errorf("stock changed on rejection: %+v", got)
	}
}

func TestProcessTransactionConvertsMajorUnits(t *testing.T) {
	svc, _, userID, customerID, productID := newServiceFixture()

	output, err := svc.ProcessTransaction(context.Background(), &ProcessTransactionInput{
		UserID:        userID,
		Type:          enum.TransactionTypeSale,
		Date:          time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC),
		CustomerID:    &customerID,
		PaymentMethod: enum.PaymentMethodCash,
		TaxRate:       5,
		Total:         472.5,
		Items: []TransactionItemInput{
			{ProductID: productID, Quantity: 1, SellPrice: 450},
		},
	})
	if err != nil {
		t.Fatalf("ProcessTransaction() error = %v", err)
	}

	if output.Transaction.Subtotal != 45000 {
		t.Errorf("subtotal = %d, want 45000", output.Transaction.Subtotal)
	}
	if output.Transaction.Tax != 2250 {
		t.Errorf("tax = %d, want 2250", output.Transaction.Tax)
	}
	if output.Transaction.Total != 47250 {
		t.Errorf("total = %d, want 47250", output.Transaction.Total)
	}
}

func TestGetTransactionScopedToOwner(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()
	txID := uuid.New()

	transactionRepo := &fakeTransactionRepository{
		transactions: []entity.Transaction{
			{ID: txID, UserID: userID, Type: enum.TransactionTypeSale},
		},
	}
	svc := NewTransactionService(&fakeLedgerRepository{}, transactionRepo)

	if _, err := svc.GetTransaction(context.Background(), userID, txID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	_, err := svc.GetTransaction(context.Background(), other, txID)
	if err == nil {
		t.Fatal("expected another user's lookup to fail")
	}
	var rejection *ledger.Error
	if errors.As(err, &rejection) {
		t.Errorf("cross-user lookup should be a not-found error, got ledger rejection %v", rejection)
	}
}
