package invoice

import (
	"html/template"
	"io"
)

// RenderHTML writes the interactive invoice view. The browser print action
// re-renders this exact view, so it carries the same sections as the PDF.
func RenderHTML(w io.Writer, doc Document) error {
	return invoiceTmpl.Execute(w, doc)
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"fcfa": FormatFCFA,
}).Parse(invoiceHTMLTemplate))

const invoiceHTMLTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="UTF-8">
<title>{{.Title}} {{.Number}}</title>
<style>
  body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #222; }
  .invoice-a4 { background: #fff; max-width: 800px; margin: 0 auto; padding: 32px; box-shadow: 0 2px 12px rgba(0,0,0,0.12); }
  .head { display: flex; align-items: center; justify-content: space-between; margin-bottom: 24px; }
  .head img { height: 60px; }
  .head h1 { font-size: 2rem; color: #228b22; background: #e3f2fd; padding: 8px 24px; border-radius: 8px; }
  .meta { display: flex; justify-content: space-between; margin-bottom: 18px; }
  .meta .right { text-align: right; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 18px; }
  th, td { padding: 8px; border: 1px solid #ddd; }
  thead tr { background: #228b22; color: #fff; }
  .totals thead tr { background: #e3f2fd; color: #228b22; }
  .totals td { font-weight: bold; }
  .num { text-align: right; }
  .summary strong { color: #228b22; }
  .seal { margin-top: 24px; text-align: right; }
  .seal img { height: 70px; }
  .seal .caption { font-size: 0.9em; color: #5a5a5a; }
  footer { margin-top: 32px; font-size: 0.95em; color: #228b22; text-align: center; }
  @media print { .invoice-a4 { box-shadow: none; } }
</style>
</head>
<body>
<div class="invoice-a4">
  <div class="head">
    <img src="/static/{{.Brand.LetterheadAsset}}" alt="{{.Brand.Name}}">
    <h1>{{.Title}}</h1>
  </div>
  <div class="meta">
    <div>
      <strong>{{.Brand.Name}}</strong><br>
      <strong>Date :</strong> {{.Date.Format "02/01/2006"}}<br>
      <strong>Numéro :</strong> {{.Number}}<br>
      <strong>Client :</strong> {{.Client}}<br>
    </div>
    <div class="right">
      <strong>Mode de règlement :</strong> {{.PaymentLabel}}<br>
      <strong>Statut :</strong> {{.StatusLabel}}<br>
    </div>
  </div>
  <table>
    <thead>
      <tr><th>Référence</th><th>Désignation</th><th>Qtés</th><th>P. Unitaire</th><th>Montant</th></tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td>{{.ProductRef}}</td>
        <td>{{.Designation}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{fcfa .UnitPrice}}</td>
        <td class="num">{{fcfa .Amount}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div class="summary">{{.SummaryLine}}</div>
  {{if .Brand.ShowTaxTable}}
  <table class="totals">
    <thead>
      <tr><th>Total</th><th>TVA 18%</th><th>NET À PAYER</th></tr>
    </thead>
    <tbody>
      <tr>
        <td>{{fcfa .Totals.Subtotal}}</td>
        <td>{{fcfa .Totals.TaxAmount}}</td>
        <td>{{fcfa .Totals.NetToPay}}</td>
      </tr>
    </tbody>
  </table>
  {{end}}
  <div><strong>Mode de règlement :</strong> {{.PaymentLabel}}</div>
  <div><strong>NET À PAYER :</strong> {{fcfa .Totals.NetToPay}}</div>
  <div class="seal">
    <img src="/static/{{.Brand.SealAsset}}" alt="" onerror="this.style.display='none'">
    <div class="caption">{{if .Brand.SealIsStamp}}Cachet{{else}}Signature{{end}}</div>
  </div>
  <footer>
    {{range .Brand.FooterLines}}{{.}}<br>{{end}}
  </footer>
</div>
</body>
</html>`
