package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is a store operating expense recorded outside the sales ledger.
type Expense struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Category  string         `gorm:"size:100;not null" json:"category"`
	Amount    int64          `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	Note      *string        `gorm:"size:500" json:"note,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

// CashSession tracks physical cash in the drawer between an opening and a
// closing count. At most one session per store is open at a time.
type CashSession struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	OpeningBalance int64      `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	ClosingBalance *int64     `json:"-"`                 // Stored in minor units, excluded from JSON
	OpenedAt       time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (s CashSession) MarshalJSON() ([]byte, error) {
	type Alias CashSession
	var closing *float64
	if s.ClosingBalance != nil {
		v := float64(*s.ClosingBalance) / 100
		closing = &v
	}
	return json.Marshal(&struct {
		Alias
		OpeningBalance float64  `json:"opening_balance"`
		ClosingBalance *float64 `json:"closing_balance,omitempty"`
		Open           bool     `json:"open"`
	}{
		Alias:          Alias(s),
		OpeningBalance: float64(s.OpeningBalance) / 100,
		ClosingBalance: closing,
		Open:           s.ClosedAt == nil,
	})
}

// BeforeCreate generates a UUID before creating a new cash session
func (s *CashSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashSession model
func (CashSession) TableName() string {
	return "cash_sessions"
}
