package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a known buyer with running balances. TotalDue is what the
// customer owes the store; StoreCredit is what the store owes the customer.
// Both are kept >= 0 by the ledger processor.
type Customer struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Phone       string         `gorm:"size:50;not null;index" json:"phone"`
	TotalSpend  int64          `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	TotalDue    int64          `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	StoreCredit int64          `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	VisitCount  int            `gorm:"default:0" json:"visit_count"`
	LastVisit   *time.Time     `json:"last_visit,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User         User                `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction       `gorm:"foreignKey:CustomerID" json:"-"`
	CreditLedger []CreditLedgerEntry `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		TotalSpend  float64 `json:"total_spend"`
		TotalDue    float64 `json:"total_due"`
		StoreCredit float64 `json:"store_credit"`
	}{
		Alias:       Alias(c),
		TotalSpend:  float64(c.TotalSpend) / 100,
		TotalDue:    float64(c.TotalDue) / 100,
		StoreCredit: float64(c.StoreCredit) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
