package invoice

import (
	"math"

	"github.com/sogepi/gestion/internal/models"
)

// StandardTaxRate is the Senegalese TVA applied unless the sale is exempt.
const StandardTaxRate = 0.18

// Computation holds the derived invoice amounts. It is recomputed on every
// render and never persisted.
type Computation struct {
	Subtotal  float64
	TaxRate   float64
	TaxAmount float64
	NetToPay  float64
}

// Compute derives subtotal, tax and net-to-pay for a sale. The function is
// total and idempotent: any sale shape yields a result, and two calls on the
// same sale are bit-identical.
func Compute(s models.Sale) Computation {
	return computeLines(s, Normalize(s))
}

// computeLines is the core used by both Compute and the document builder,
// so a caller that already normalized does not normalize twice.
func computeLines(s models.Sale, lines []LineItem) Computation {
	var subtotal float64
	for _, li := range lines {
		// no per-line rounding; only final amounts are displayed rounded
		subtotal += li.Amount()
	}
	rate := StandardTaxRate
	if s.TaxExempt || s.BrandVariant == models.VariantAlternate {
		rate = 0
	}
	// FCFA has no sub-unit denominations, hence whole-franc tax
	tax := math.Round(subtotal * rate)
	return Computation{
		Subtotal:  subtotal,
		TaxRate:   rate,
		TaxAmount: tax,
		NetToPay:  subtotal + tax,
	}
}
