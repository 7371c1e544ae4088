package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CreditLedgerEntry is an append-only audit row written whenever store
// credit is issued or consumed. Entries are never mutated or deleted and
// are listed newest-first.
type CreditLedgerEntry struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"customer_id"`
	TransactionID uuid.UUID            `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Type          enum.LedgerEntryType `gorm:"size:20;not null" json:"type"`
	Amount        int64                `gorm:"not null" json:"-"`  // Stored in minor units, excluded from JSON
	BalanceAfter  int64                `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	Note          string               `gorm:"size:500" json:"note,omitempty"`
	CreatedAt     time.Time            `gorm:"index" json:"created_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (e CreditLedgerEntry) MarshalJSON() ([]byte, error) {
	type Alias CreditLedgerEntry
	return json.Marshal(&struct {
		Alias
		Amount       float64 `json:"amount"`
		BalanceAfter float64 `json:"balance_after"`
	}{
		Alias:        Alias(e),
		Amount:       float64(e.Amount) / 100,
		BalanceAfter: float64(e.BalanceAfter) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *CreditLedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditLedgerEntry model
func (CreditLedgerEntry) TableName() string {
	return "credit_ledger_entries"
}
