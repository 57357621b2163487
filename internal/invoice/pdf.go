package invoice

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sogepi/gestion/internal/assets"
)

// brand green, the same tone the interactive view uses
var accent = props.Color{Red: 34, Green: 139, Blue: 34}
var muted = props.Color{Red: 90, Green: 90, Blue: 90}

// Exporter projects a Document onto a paginated A4 PDF. Long item lists flow
// across pages without manual pagination math; maroto handles row overflow.
type Exporter struct {
	Assets assets.Fetcher
}

func NewExporter(f assets.Fetcher) *Exporter { return &Exporter{Assets: f} }

// Export renders the document. An image fetch or decode failure skips that
// visual element only; the rest of the document is still produced.
func (e *Exporter) Export(ctx context.Context, doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(10).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	e.addHeader(ctx, m, doc)
	addMetadata(m, doc)
	addItemsTable(m, doc)
	addSummary(m, doc)
	if doc.Brand.ShowTaxTable {
		addTaxTable(m, doc)
	}
	addPayment(m, doc)
	e.addSeal(ctx, m, doc)
	addFooter(m, doc)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf generation: %w", err)
	}
	return out.GetBytes(), nil
}

// fetchPNG loads and validates an embeddable image; nil means "skip it".
func (e *Exporter) fetchPNG(ctx context.Context, path string) []byte {
	if e.Assets == nil || path == "" {
		return nil
	}
	b, err := e.Assets.Fetch(ctx, path)
	if err != nil {
		log.Printf("invoice: skipping asset %s: %v", path, err)
		return nil
	}
	if _, err := png.Decode(bytes.NewReader(b)); err != nil {
		log.Printf("invoice: undecodable asset %s: %v", path, err)
		return nil
	}
	return b
}

func (e *Exporter) addHeader(ctx context.Context, m core.Maroto, doc Document) {
	logoCol := col.New(5)
	if logo := e.fetchPNG(ctx, doc.Brand.LetterheadAsset); logo != nil {
		logoCol.Add(image.NewFromBytes(logo, extension.Png, props.Rect{Percent: 80, Left: 0}))
	} else {
		logoCol.Add(text.New(doc.Brand.Name, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left}))
	}
	m.AddRow(25,
		logoCol,
		col.New(7).Add(
			text.New(doc.Title, props.Text{
				Size:  22,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &accent,
			}),
		),
	)
	m.AddRow(4, line.NewCol(12))
}

func addMetadata(m core.Maroto, doc Document) {
	m.AddRow(24,
		col.New(7).Add(
			text.New(doc.Brand.Name, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
			text.New("Date : "+doc.Date.Format("02/01/2006"), props.Text{Size: 10, Top: 6, Align: align.Left}),
			text.New("Numéro : "+doc.Number, props.Text{Size: 10, Top: 11, Align: align.Left}),
			text.New("Client : "+doc.Client, props.Text{Size: 10, Top: 16, Align: align.Left}),
		),
		col.New(5).Add(
			text.New("Mode de règlement : "+doc.PaymentLabel(), props.Text{Size: 10, Top: 6, Align: align.Right}),
			text.New("Statut : "+doc.StatusLabel(), props.Text{Size: 10, Top: 11, Align: align.Right}),
		),
	)
	m.AddRow(4, line.NewCol(12))
}

func addItemsTable(m core.Maroto, doc Document) {
	header := props.Text{Size: 10, Style: fontstyle.Bold, Color: &accent}
	m.AddRow(8,
		col.New(2).Add(text.New("Référence", header)),
		col.New(4).Add(text.New("Désignation", header)),
		col.New(1).Add(text.New("Qtés", header)),
		col.New(2).Add(text.New("P. Unitaire", propsRight(header))),
		col.New(3).Add(text.New("Montant", propsRight(header))),
	)
	m.AddRow(2, line.NewCol(12))
	for _, li := range doc.Lines {
		cell := props.Text{Size: 9}
		m.AddRow(7,
			col.New(2).Add(text.New(shortRef(li.ProductRef), cell)),
			col.New(4).Add(text.New(li.Designation, cell)),
			col.New(1).Add(text.New(formatQty(li.Quantity), cell)),
			col.New(2).Add(text.New(FormatFCFA(li.UnitPrice), propsRight(cell))),
			col.New(3).Add(text.New(FormatFCFA(li.Amount()), propsRight(cell))),
		)
	}
	m.AddRow(3, line.NewCol(12))
}

func addSummary(m core.Maroto, doc Document) {
	m.AddRow(10,
		col.New(12).Add(
			text.New(doc.SummaryLine(), props.Text{Size: 10, Style: fontstyle.Italic, Align: align.Left}),
		),
	)
}

func addTaxTable(m core.Maroto, doc Document) {
	header := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center, Color: &accent}
	value := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Center}
	m.AddRow(8,
		col.New(4).Add(text.New("Total", header)),
		col.New(4).Add(text.New("TVA 18%", header)),
		col.New(4).Add(text.New("NET À PAYER", header)),
	)
	m.AddRow(8,
		col.New(4).Add(text.New(FormatFCFA(doc.Totals.Subtotal), value)),
		col.New(4).Add(text.New(FormatFCFA(doc.Totals.TaxAmount), value)),
		col.New(4).Add(text.New(FormatFCFA(doc.Totals.NetToPay), value)),
	)
	m.AddRow(3, line.NewCol(12))
}

func addPayment(m core.Maroto, doc Document) {
	label := "NET À PAYER : " + FormatFCFA(doc.Totals.NetToPay)
	m.AddRow(8,
		col.New(6).Add(text.New("Mode de règlement : "+doc.PaymentLabel(), props.Text{Size: 10})),
		col.New(6).Add(text.New(label, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
	)
}

func (e *Exporter) addSeal(ctx context.Context, m core.Maroto, doc Document) {
	caption := "Signature"
	if doc.Brand.SealIsStamp {
		caption = "Cachet"
	}
	sealCol := col.New(4)
	if seal := e.fetchPNG(ctx, doc.Brand.SealAsset); seal != nil {
		sealCol.Add(
			image.NewFromBytes(seal, extension.Png, props.Rect{Percent: 70, Center: true}),
		)
	}
	m.AddRow(28,
		col.New(8),
		sealCol,
	)
	m.AddRow(6,
		col.New(8),
		col.New(4).Add(text.New(caption, props.Text{Size: 9, Align: align.Center, Color: &muted})),
	)
}

func addFooter(m core.Maroto, doc Document) {
	m.AddRow(4, line.NewCol(12))
	for _, l := range doc.Brand.FooterLines {
		m.AddRow(5,
			col.New(12).Add(text.New(l, props.Text{Size: 9, Align: align.Center, Color: &accent})),
		)
	}
}

// formatQty prints whole quantities without a decimal part (2, not 2.0) and
// fractional ones as stored (2.5).
func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func propsRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}
