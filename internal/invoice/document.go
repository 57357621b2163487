package invoice

import (
	"fmt"
	"regexp"
	"time"

	"github.com/sogepi/gestion/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Document is the fully resolved view model shared by the interactive HTML
// view and the PDF export. Both projections read their numbers from the same
// Computation, which keeps them identical by construction.
type Document struct {
	Title         string
	Number        string
	Date          time.Time
	Client        string
	PaymentMethod string
	Status        string
	Lines         []LineItem
	Totals        Computation
	Brand         Brand
}

// Build normalizes the sale once and derives everything a renderer needs.
func Build(s models.Sale) Document {
	lines := Normalize(s)
	return Document{
		Title:         "FACTURE",
		Number:        s.ID,
		Date:          s.CreatedAt,
		Client:        s.Client,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Lines:         lines,
		Totals:        computeLines(s, lines),
		Brand:         SelectBrand(s.BrandVariant),
	}
}

// SummaryLine is the textual amount summary printed under the item table.
func (d Document) SummaryLine() string {
	return "Arrêté la présente facture à la somme de : " + FormatFCFA(d.Totals.NetToPay)
}

// PaymentLabel maps stored payment codes to their display form.
func (d Document) PaymentLabel() string {
	switch d.PaymentMethod {
	case models.PaymentCash:
		return "Espèces"
	case models.PaymentTransfer:
		return "Virement"
	case models.PaymentCheck:
		return "Chèque"
	case models.PaymentMobile:
		return "Mobile Money"
	}
	return d.PaymentMethod
}

// StatusLabel maps stored statuses to their display form.
func (d Document) StatusLabel() string {
	switch d.Status {
	case models.StatusPaid:
		return "Payée"
	case models.StatusUnpaid:
		return "Non payée"
	case models.StatusProforma:
		return "Pro forma"
	}
	return d.Status
}

var frAmounts = message.NewPrinter(language.French)

// FormatFCFA renders a whole-franc amount with French digit grouping.
// FCFA has no sub-unit denominations, so fractions never show.
func FormatFCFA(v float64) string {
	return frAmounts.Sprintf("%.0f", v) + " FCFA"
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName implements the export naming contract Invoice_{client}_{id}.{ext}.
// The client segment is reduced to filesystem-safe characters.
func FileName(s models.Sale, ext string) string {
	client := unsafeFileChars.ReplaceAllString(s.Client, "_")
	if client == "" {
		client = "client"
	}
	return fmt.Sprintf("Invoice_%s_%s.%s", client, s.ID, ext)
}
