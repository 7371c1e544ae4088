package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	domainRepo "github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction history repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Settlement").
		First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tx, err
}

func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var transactions []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{}).Where("user_id = ?", userID)

	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.From != nil {
		query = query.Where("date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("date < ?", *params.To)
	}
	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Preload("Settlement").
		Order("date DESC, created_at DESC").
		Find(&transactions).Error

	return transactions, total, err
}

func (r *transactionRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Transaction, error) {
	var transactions []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Preload("Settlement").
		Order("date DESC, created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error) {
	var transactions []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Preload("Items").
		Preload("Settlement").
		Order("date DESC, created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

type creditLedgerRepository struct {
	db *gorm.DB
}

// NewCreditLedgerRepository creates a new credit ledger repository
func NewCreditLedgerRepository(db *gorm.DB) domainRepo.CreditLedgerRepository {
	return &creditLedgerRepository{db: db}
}

func (r *creditLedgerRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.CreditLedgerEntry, error) {
	var entries []entity.CreditLedgerEntry
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *creditLedgerRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.CreditLedgerEntry, error) {
	var entries []entity.CreditLedgerEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates the bridge between the transaction processor
// and postgres
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) LoadSnapshot(ctx context.Context, userID uuid.UUID) (ledger.Snapshot, error) {
	var snap ledger.Snapshot

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&snap.Products).Error; err != nil {
		return snap, err
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&snap.Customers).Error; err != nil {
		return snap, err
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Preload("Settlement").
		Order("date DESC, created_at DESC").
		Find(&snap.Transactions).Error; err != nil {
		return snap, err
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&snap.CreditLedger).Error; err != nil {
		return snap, err
	}
	return snap, nil
}

// SaveResult writes the accepted transaction and everything it touched in
// one database transaction. A failure anywhere rolls the whole write back,
// so stock, balances, history, and the credit ledger never drift apart.
func (r *ledgerRepository) SaveResult(ctx context.Context, userID uuid.UUID, result *ledger.Result) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := result.Transaction
		record.UserID = userID
		items := record.Items
		settlement := record.Settlement
		record.Items = nil
		record.Settlement = nil

		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].TransactionID = record.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if settlement != nil {
			settlement.TransactionID = record.ID
			if err := tx.Create(settlement).Error; err != nil {
				return err
			}
		}

		for i := range result.UpdatedProducts {
			p := result.UpdatedProducts[i]
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", p.ID).
				Updates(map[string]interface{}{
					"stock":      p.Stock,
					"total_sold": p.TotalSold,
				}).Error; err != nil {
				return err
			}
		}

		if result.UpdatedCustomer != nil {
			c := result.UpdatedCustomer
			if err := tx.Model(&entity.Customer{}).
				Where("id = ?", c.ID).
				Updates(map[string]interface{}{
					"total_spend":  c.TotalSpend,
					"total_due":    c.TotalDue,
					"store_credit": c.StoreCredit,
					"visit_count":  c.VisitCount,
					"last_visit":   c.LastVisit,
				}).Error; err != nil {
				return err
			}
		}

		for i := range result.LedgerEntries {
			entry := result.LedgerEntries[i]
			entry.UserID = userID
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
