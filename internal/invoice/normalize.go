package invoice

import (
	"encoding/json"

	"github.com/sogepi/gestion/internal/models"
)

// LineItem is a single product/quantity/price entry of an invoice. Quantity is
// a float64: bulk goods are sold in fractional units (2.5 bags, 0.5 tonnes)
// and truncating would understate the subtotal.
type LineItem struct {
	ProductRef  string
	Designation string
	Quantity    float64
	UnitPrice   float64
}

// Amount is quantity × unit price, computed on demand and never stored.
func (li LineItem) Amount() float64 { return li.Quantity * li.UnitPrice }

// jsonItem mirrors the entries written into the sales json column.
type jsonItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// Normalize converts either sale shape into a non-empty line-item sequence.
// Priority: json items array, then the legacy flat product columns, then the
// stored total as a single qty=1 line. A sale with none of those yields one
// zero-amount line: subtotal 0 is a valid (degenerate) invoice, not an error.
// Callers run this exactly once per sale, at the boundary.
func Normalize(s models.Sale) []LineItem {
	if len(s.Items) > 0 {
		var raw []jsonItem
		if err := json.Unmarshal(s.Items, &raw); err == nil && len(raw) > 0 {
			lines := make([]LineItem, 0, len(raw))
			for _, it := range raw {
				lines = append(lines, LineItem{
					ProductRef:  it.ID,
					Designation: it.Name,
					Quantity:    it.Quantity,
					UnitPrice:   it.Price,
				})
			}
			return lines
		}
		// malformed json falls through to the legacy columns
	}
	if s.Quantity > 0 && s.UnitPrice > 0 {
		return []LineItem{{ProductRef: s.ProductID, Quantity: s.Quantity, UnitPrice: s.UnitPrice}}
	}
	if s.Total > 0 {
		return []LineItem{{ProductRef: s.ProductID, Quantity: 1, UnitPrice: s.Total}}
	}
	return []LineItem{{Quantity: 1, UnitPrice: 0}}
}
