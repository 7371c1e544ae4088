package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable catalog item. Stock and TotalSold are only
// mutated by the ledger processor or catalog management; both stay >= 0.
type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Barcode   string         `gorm:"size:100;not null;index" json:"barcode"`
	Category  string         `gorm:"size:100" json:"category"`
	BuyPrice  int64          `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	SellPrice int64          `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	Stock     int            `gorm:"default:0" json:"stock"`
	TotalSold int            `gorm:"default:0" json:"total_sold"`
	HSNCode   *string        `gorm:"size:50;column:hsn_code" json:"hsn_code,omitempty"`
	Image     *string        `gorm:"size:500" json:"image,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		BuyPrice  float64 `json:"buy_price"`
		SellPrice float64 `json:"sell_price"`
	}{
		Alias:     Alias(p),
		BuyPrice:  float64(p.BuyPrice) / 100,
		SellPrice: float64(p.SellPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
