package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sogepi/gestion/internal/invoice"
	"github.com/sogepi/gestion/internal/models"
	"github.com/sogepi/gestion/internal/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmptySale         = errors.New("une vente doit contenir au moins un produit")
	ErrInvalidTransition = errors.New("transition de statut interdite")
	ErrSaleNotFound      = errors.New("vente introuvable")
)

// SaleService encapsulates sale persistence and the status state machine.
type SaleService struct {
	DB *gorm.DB
}

func NewSaleService(db *gorm.DB) *SaleService { return &SaleService{DB: db} }

// SaleFilter narrows List results. Zero values mean "no constraint".
type SaleFilter struct {
	From   time.Time
	To     time.Time
	Status string
}

// List returns sales newest first. Both row shapes come back as stored;
// normalization happens at render time, not here.
func (s *SaleService) List(f SaleFilter) ([]models.Sale, error) {
	q := s.DB.Model(&models.Sale{})
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var sales []models.Sale
	if err := q.Order("created_at desc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Get loads one sale by id.
func (s *SaleService) Get(id string) (*models.Sale, error) {
	var sale models.Sale
	if err := s.DB.First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// SaleItemInput is one line of a new sale. Quantity accepts fractional units.
type SaleItemInput struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateSaleInput carries everything the record-sale operation needs.
type CreateSaleInput struct {
	Client        string          `json:"client"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Items         []SaleItemInput `json:"items"`
	TaxExempt     bool            `json:"notaxinfo"`
	BrandVariant  string          `json:"brand_variant"`
}

// Create validates and persists a new sale in the multi-line shape. The stored
// total is the sum of line amounts; renders recompute it anyway.
func (s *SaleService) Create(in CreateSaleInput) (*models.Sale, error) {
	cv := validation.Violations{}
	validation.Required("client", in.Client, cv)
	if !cv.Empty() {
		return nil, errors.New("client requis")
	}
	if len(in.Items) == 0 {
		return nil, ErrEmptySale
	}
	var total float64
	for i, it := range in.Items {
		v := validation.Violations{}
		validation.PositiveFloat("quantity", it.Quantity, v)
		validation.PositiveFloat("price", it.Price, v)
		if !v.Empty() {
			return nil, fmt.Errorf("ligne %d : quantité et prix doivent être supérieurs à zéro", i+1)
		}
		total += it.Quantity * it.Price
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentCash
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("mode de paiement inconnu : %s", in.PaymentMethod)
	}
	if in.Status == "" {
		in.Status = models.StatusUnpaid
	}
	if !models.ValidStatus(in.Status) {
		return nil, fmt.Errorf("statut inconnu : %s", in.Status)
	}
	if in.BrandVariant == "" {
		in.BrandVariant = models.VariantDefault
	}
	raw, err := json.Marshal(in.Items)
	if err != nil {
		return nil, err
	}
	sale := models.Sale{
		Client:        in.Client,
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
		Items:         datatypes.JSON(raw),
		Total:         total,
		TaxExempt:     in.TaxExempt,
		BrandVariant:  in.BrandVariant,
	}
	if err := s.DB.Create(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// UpdateStatus applies the one-directional state machine: unpaid → paid and
// proforma → paid only; paid is terminal. The guarded UPDATE leaves the row
// untouched when the transition is not allowed, so a failed call never
// mutates state speculatively.
func (s *SaleService) UpdateStatus(id, newStatus string) (*models.Sale, error) {
	if newStatus != models.StatusPaid {
		return nil, ErrInvalidTransition
	}
	res := s.DB.Model(&models.Sale{}).
		Where("id = ? AND status IN ?", id, []string{models.StatusUnpaid, models.StatusProforma}).
		Update("status", models.StatusPaid)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// distinguish missing sale from a forbidden transition
		if _, err := s.Get(id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}
	return s.Get(id)
}

// Stats are the dashboard aggregates, derived fresh on every call.
type Stats struct {
	WindowTotal   float64 `json:"window_total"`
	PaidCount     int64   `json:"paid_count"`
	UnpaidCount   int64   `json:"unpaid_count"`
	ProformaCount int64   `json:"proforma_count"`
	WindowSales   int64   `json:"window_sales"`
}

// StatsWindow computes the sales total over [from, now) plus global status
// counts. Totals go through the invoice normalizer so legacy rows count too.
func (s *SaleService) StatsWindow(from, to time.Time) (Stats, error) {
	var st Stats
	sales, err := s.List(SaleFilter{From: from, To: to})
	if err != nil {
		return st, err
	}
	st.WindowSales = int64(len(sales))
	for _, sale := range sales {
		st.WindowTotal += invoice.Compute(sale).Subtotal
	}
	counts := []struct {
		status string
		dst    *int64
	}{
		{models.StatusPaid, &st.PaidCount},
		{models.StatusUnpaid, &st.UnpaidCount},
		{models.StatusProforma, &st.ProformaCount},
	}
	for _, c := range counts {
		if err := s.DB.Model(&models.Sale{}).Where("status = ?", c.status).Count(c.dst).Error; err != nil {
			return st, err
		}
	}
	return st, nil
}

// WindowFrom resolves a dashboard range keyword to its start time.
func WindowFrom(rangeName string, now time.Time) time.Time {
	switch rangeName {
	case "weekly":
		return now.AddDate(0, 0, -7)
	case "monthly":
		return now.AddDate(0, -1, 0)
	default: // daily
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
}
