package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Statuts de facture. paid est terminal : aucune transition n'en sort.
const (
	StatusUnpaid   = "unpaid"
	StatusPaid     = "paid"
	StatusProforma = "proforma"
)

// Modes de paiement acceptés.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentCheck    = "check"
	PaymentMobile   = "mobile"
)

// Variantes d'en-tête (deux identités commerciales, même calcul).
const (
	VariantDefault   = "default"
	VariantAlternate = "alternate"
)

// Sale is a recorded transaction. Rows exist in two shapes: current rows carry
// the Items json array; legacy rows store a single product in the flat
// ProductID/Quantity/UnitPrice columns with a precomputed Total. Both shapes
// are accepted at read time and normalized before any computation.
type Sale struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	Client        string `gorm:"not null;index" json:"client"`
	PaymentMethod string `gorm:"not null;default:'cash'" json:"payment_method"`
	Status        string `gorm:"not null;default:'unpaid';index" json:"status"`
	// Items holds [{"id","name","quantity","price"}, ...]; null on legacy rows.
	Items datatypes.JSON `json:"items,omitempty"`
	// Legacy single-product shape, kept readable for rows written before Items existed.
	ProductID string  `gorm:"size:36" json:"product_id,omitempty"`
	Quantity  float64 `json:"quantity,omitempty"`
	UnitPrice float64 `json:"unit_price,omitempty"`
	// Total is the stored sum at creation time; display math always recomputes.
	Total        float64   `json:"total"`
	TaxExempt    bool      `gorm:"column:notaxinfo;not null;default:false" json:"notaxinfo"`
	BrandVariant string    `gorm:"not null;default:'default'" json:"brand_variant"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Sale) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ShortRef is the abbreviated reference shown in lists (#8 first id chars).
func (s *Sale) ShortRef() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}

// ValidStatus reports whether v is one of the known invoice statuses.
func ValidStatus(v string) bool {
	return v == StatusUnpaid || v == StatusPaid || v == StatusProforma
}

// ValidPaymentMethod reports whether v is a known payment method.
func ValidPaymentMethod(v string) bool {
	switch v {
	case PaymentCash, PaymentTransfer, PaymentCheck, PaymentMobile:
		return true
	}
	return false
}
