package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is an immutable record of one business event: a sale, a
// return, or a payment collected against outstanding due. Total is stored
// signed - negative for returns. Once accepted by the ledger processor a
// transaction is appended to history and never mutated.
type Transaction struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Date               time.Time            `gorm:"not null;index" json:"date"`
	Type               enum.TransactionType `gorm:"size:20;not null;index" json:"type"`
	CustomerID         *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName       string               `gorm:"size:255" json:"customer_name,omitempty"`
	InvoiceNo          string               `gorm:"size:100;not null" json:"invoice_no"`
	Subtotal           int64                `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	Discount           int64                `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	TaxRate            float64              `gorm:"default:0" json:"tax_rate"`
	TaxLabel           string               `gorm:"size:50" json:"tax_label,omitempty"`
	Tax                int64                `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	Total              int64                `gorm:"not null" json:"-"`  // Stored in minor units, signed, excluded from JSON
	PaymentMethod      enum.PaymentMethod   `gorm:"size:20" json:"payment_method"`
	UseStoreCredit     bool                 `gorm:"default:false" json:"use_store_credit"`
	StoreCreditApplied int64                `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	ReturnExcessMode   *enum.ExcessMode     `gorm:"size:20" json:"return_excess_mode,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`

	// Relationships
	User       User              `gorm:"foreignKey:UserID" json:"-"`
	Customer   *Customer         `gorm:"foreignKey:CustomerID" json:"-"`
	Items      []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
	Settlement *ReturnSettlement `gorm:"foreignKey:TransactionID" json:"settlement,omitempty"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		Subtotal           float64 `json:"subtotal"`
		Discount           float64 `json:"discount"`
		Tax                float64 `json:"tax"`
		Total              float64 `json:"total"`
		StoreCreditApplied float64 `json:"store_credit_applied"`
	}{
		Alias:              Alias(t),
		Subtotal:           float64(t.Subtotal) / 100,
		Discount:           float64(t.Discount) / 100,
		Tax:                float64(t.Tax) / 100,
		Total:              float64(t.Total) / 100,
		StoreCreditApplied: float64(t.StoreCreditApplied) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem is a line item in a sale or return. Name and SellPrice are
// snapshots taken at transaction time; later catalog edits do not rewrite
// history.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	SellPrice     int64     `gorm:"not null" json:"-"`  // Stored in minor units, excluded from JSON
	Discount      int64     `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Product     Product     `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (ti TransactionItem) MarshalJSON() ([]byte, error) {
	type Alias TransactionItem
	return json.Marshal(&struct {
		Alias
		SellPrice float64 `json:"sell_price"`
		Discount  float64 `json:"discount"`
	}{
		Alias:     Alias(ti),
		SellPrice: float64(ti.SellPrice) / 100,
		Discount:  float64(ti.Discount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction item
func (ti *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// ReturnSettlement records how a return's value was split: cleared against
// existing due, refunded in cash, or issued as store credit. The three
// amounts always sum to the absolute transaction total.
type ReturnSettlement struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"transaction_id"`
	AppliedToDue   int64           `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	RefundedCash   int64           `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	CreditedAmount int64           `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	ExcessMode     enum.ExcessMode `gorm:"size:20;not null" json:"excess_mode"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (rs ReturnSettlement) MarshalJSON() ([]byte, error) {
	type Alias ReturnSettlement
	return json.Marshal(&struct {
		Alias
		AppliedToDue   float64 `json:"applied_to_due"`
		RefundedCash   float64 `json:"refunded_cash"`
		CreditedAmount float64 `json:"credited_amount"`
	}{
		Alias:          Alias(rs),
		AppliedToDue:   float64(rs.AppliedToDue) / 100,
		RefundedCash:   float64(rs.RefundedCash) / 100,
		CreditedAmount: float64(rs.CreditedAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new settlement
func (rs *ReturnSettlement) BeforeCreate(tx *gorm.DB) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnSettlement model
func (ReturnSettlement) TableName() string {
	return "return_settlements"
}
