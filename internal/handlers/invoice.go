package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/sogepi/gestion/internal/httpx"
	"github.com/sogepi/gestion/internal/invoice"
	"github.com/sogepi/gestion/internal/models"
	"github.com/sogepi/gestion/internal/services"
)

// InvoiceHandler projects sales onto the two invoice representations: the
// interactive HTML view (also used by browser print) and the PDF download.
type InvoiceHandler struct {
	Svc      *services.SaleService
	Exporter *invoice.Exporter
}

func NewInvoiceHandler(svc *services.SaleService, exp *invoice.Exporter) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc, Exporter: exp}
}

// View: GET /invoices/view?id=... – interactive invoice document
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	sale, ok := h.loadSale(w, r)
	if !ok {
		return
	}
	doc := invoice.Build(*sale)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := invoice.RenderHTML(w, doc); err != nil {
		// headers already sent; logging is all that is left
		log.Printf("invoice view %s: render: %v", sale.ID, err)
	}
}

// PDF: GET /invoices/pdf?id=... – paginated export download
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	sale, ok := h.loadSale(w, r)
	if !ok {
		return
	}
	doc := invoice.Build(*sale)
	data, err := h.Exporter.Export(r.Context(), doc)
	if err != nil {
		// layout failures block the action; partial files are never sent
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+invoice.FileName(*sale, "pdf")+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *InvoiceHandler) loadSale(w http.ResponseWriter, r *http.Request) (*models.Sale, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return nil, false
	}
	sale, err := h.Svc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_sale", nil)
		return nil, false
	}
	return sale, true
}
