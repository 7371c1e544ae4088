package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"gorm.io/gorm"
)

// UpfrontOrder is a pre-paid/advance order for goods not yet delivered.
// Remaining and Status are always derived from TotalCost and AdvancePaid.
type UpfrontOrder struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	Description string             `gorm:"size:500;not null" json:"description"`
	Quantity    int                `gorm:"not null" json:"quantity"`
	TotalCost   int64              `gorm:"not null" json:"-"`  // Stored in minor units, excluded from JSON
	AdvancePaid int64              `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	Remaining   int64              `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	Status      enum.UpfrontStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (o UpfrontOrder) MarshalJSON() ([]byte, error) {
	type Alias UpfrontOrder
	return json.Marshal(&struct {
		Alias
		TotalCost   float64 `json:"total_cost"`
		AdvancePaid float64 `json:"advance_paid"`
		Remaining   float64 `json:"remaining"`
	}{
		Alias:       Alias(o),
		TotalCost:   float64(o.TotalCost) / 100,
		AdvancePaid: float64(o.AdvancePaid) / 100,
		Remaining:   float64(o.Remaining) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new upfront order
func (o *UpfrontOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UpfrontOrder model
func (UpfrontOrder) TableName() string {
	return "upfront_orders"
}
