package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a named product group. Position fixes the category's place in
// the ordered list; generated barcode bands are derived from it, so
// positions are assigned once and never reshuffled by deletes.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_categories_user_name,unique" json:"user_id"`
	Name      string    `gorm:"size:100;not null;index:idx_categories_user_name,unique" json:"name"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
