package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product catalogue entry. Price is the default unit price proposed when the
// product is added to a sale; the sale keeps its own copy of the agreed price.
type Product struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Reference   string         `gorm:"size:40;index" json:"reference"`
	Price       float64        `gorm:"not null" json:"price"`
	Description string         `json:"description"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
