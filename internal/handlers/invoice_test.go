package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sogepi/gestion/internal/invoice"
	"github.com/sogepi/gestion/internal/models"
	"github.com/sogepi/gestion/internal/services"
)

func newInvoiceHandler(t *testing.T) (*InvoiceHandler, *services.SaleService) {
	t.Helper()
	svc := services.NewSaleService(setupTestDB(t))
	return NewInvoiceHandler(svc, invoice.NewExporter(nil)), svc
}

func TestInvoiceViewEndpoint(t *testing.T) {
	h, svc := newInvoiceHandler(t)
	sale := createTestSale(t, svc, models.StatusUnpaid)

	rec := httptest.NewRecorder()
	h.View(rec, httptest.NewRequest(http.MethodGet, "/invoices/view?id="+sale.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"FACTURE", sale.Client, "TVA 18%", invoice.FormatFCFA(41300)} {
		if !strings.Contains(body, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestInvoicePDFEndpoint(t *testing.T) {
	h, svc := newInvoiceHandler(t)
	sale := createTestSale(t, svc, models.StatusUnpaid)

	rec := httptest.NewRecorder()
	h.PDF(rec, httptest.NewRequest(http.MethodGet, "/invoices/pdf?id="+sale.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, invoice.FileName(*sale, "pdf")) || !strings.HasPrefix(cd, "attachment") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("body is not a PDF")
	}
}

func TestInvoiceMissingSale(t *testing.T) {
	h, _ := newInvoiceHandler(t)

	rec := httptest.NewRecorder()
	h.View(rec, httptest.NewRequest(http.MethodGet, "/invoices/view?id=ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("view status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.PDF(rec, httptest.NewRequest(http.MethodGet, "/invoices/pdf", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("pdf without id status = %d, want 400", rec.Code)
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	svc := services.NewSaleService(setupTestDB(t))
	h := NewDashboardHandler(svc)
	createTestSale(t, svc, models.StatusUnpaid)
	createTestSale(t, svc, models.StatusPaid)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats?range=daily", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Range string         `json:"range"`
		Stats services.Stats `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Stats.WindowSales != 2 || resp.Stats.WindowTotal != 70000 {
		t.Fatalf("stats = %+v", resp.Stats)
	}
	if resp.Stats.PaidCount != 1 || resp.Stats.UnpaidCount != 1 {
		t.Fatalf("counts = %+v", resp.Stats)
	}

	rec = httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats?range=yearly", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid range accepted: %d", rec.Code)
	}
}
