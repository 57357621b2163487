package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sogepi/gestion/internal/httpx"
	"github.com/sogepi/gestion/internal/invoice"
	"github.com/sogepi/gestion/internal/models"
	"github.com/sogepi/gestion/internal/services"
)

type SaleHandler struct {
	Svc *services.SaleService
}

func NewSaleHandler(svc *services.SaleService) *SaleHandler { return &SaleHandler{Svc: svc} }

// saleView augments the stored row with the recomputed amounts so list
// consumers never read the persisted total.
type saleView struct {
	models.Sale
	Ref       string  `json:"ref"`
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	NetToPay  float64 `json:"net_to_pay"`
}

func toView(s models.Sale) saleView {
	c := invoice.Compute(s)
	return saleView{Sale: s, Ref: s.ShortRef(), Subtotal: c.Subtotal, TaxAmount: c.TaxAmount, NetToPay: c.NetToPay}
}

// List: GET /sales?from=&to=&status=  (dates in 2006-01-02 form)
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	var f services.SaleFilter
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_from_date", nil)
			return
		}
		f.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_to_date", nil)
			return
		}
		f.To = t
	}
	if v := r.URL.Query().Get("status"); v != "" {
		if !models.ValidStatus(v) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
			return
		}
		f.Status = v
	}
	sales, err := h.Svc.List(f)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_sales", nil)
		return
	}
	views := make([]saleView, 0, len(sales))
	for _, s := range sales {
		views = append(views, toView(s))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": views, "total": len(views)})
}

// Create: POST /sales
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateSaleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	sale, err := h.Svc.Create(in)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, toView(*sale))
}

// UpdateStatus: POST /sales/status?id=...&status=paid
// A storage failure surfaces its message verbatim and leaves the row as-is.
func (h *SaleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	newStatus := r.URL.Query().Get("status")
	if id == "" || newStatus == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id_or_status", nil)
		return
	}
	sale, err := h.Svc.UpdateStatus(id, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSaleNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		case errors.Is(err, services.ErrInvalidTransition):
			httpx.JSONError(w, http.StatusConflict, "invalid_transition", err.Error())
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "status_update_failed", err.Error())
		}
		return
	}
	httpx.JSON(w, http.StatusOK, toView(*sale))
}
