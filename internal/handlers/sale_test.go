package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sogepi/gestion/internal/httpx"
	"github.com/sogepi/gestion/internal/models"
	"github.com/sogepi/gestion/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Sale{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestSale(t *testing.T, svc *services.SaleService, status string) *models.Sale {
	t.Helper()
	sale, err := svc.Create(services.CreateSaleInput{
		Client: "Client Test",
		Status: status,
		Items: []services.SaleItemInput{
			{ProductID: "p1", Name: "Ciment 50kg", Quantity: 2, Price: 15000},
			{ProductID: "p2", Name: "Transport", Quantity: 1, Price: 5000},
		},
	})
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}
	return sale
}

func TestSaleCreateEndpoint(t *testing.T) {
	h := NewSaleHandler(services.NewSaleService(setupTestDB(t)))

	body := `{"client":"Chantier Ngor","items":[{"id":"p1","name":"Ciment 50kg","quantity":2,"price":15000},{"id":"p2","name":"Transport","quantity":1,"price":5000}]}`
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got struct {
		ID        string  `json:"id"`
		Status    string  `json:"status"`
		Subtotal  float64 `json:"subtotal"`
		TaxAmount float64 `json:"tax_amount"`
		NetToPay  float64 `json:"net_to_pay"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID == "" || got.Status != models.StatusUnpaid {
		t.Fatalf("unexpected sale: %+v", got)
	}
	if got.Subtotal != 35000 || got.TaxAmount != 6300 || got.NetToPay != 41300 {
		t.Fatalf("amounts = %+v", got)
	}
}

func TestSaleCreateRejectsEmptyItems(t *testing.T) {
	h := NewSaleHandler(services.NewSaleService(setupTestDB(t)))

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(`{"client":"X","items":[]}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp httpx.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "validation_failed" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestSaleListFilters(t *testing.T) {
	svc := services.NewSaleService(setupTestDB(t))
	h := NewSaleHandler(svc)
	createTestSale(t, svc, models.StatusUnpaid)
	createTestSale(t, svc, models.StatusPaid)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/sales?status=paid", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []saleView `json:"items"`
		Total int        `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("got %d items", resp.Total)
	}
	if resp.Items[0].NetToPay != 41300 {
		t.Fatalf("net = %v, want 41300", resp.Items[0].NetToPay)
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/sales?status=refunded", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status filter accepted: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/sales?from=not-a-date", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid date filter accepted: %d", rec.Code)
	}
}

func TestSaleStatusEndpoint(t *testing.T) {
	svc := services.NewSaleService(setupTestDB(t))
	h := NewSaleHandler(svc)
	sale := createTestSale(t, svc, models.StatusUnpaid)

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, httptest.NewRequest(http.MethodPost, "/sales/status?id="+sale.ID+"&status=paid", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got saleView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != models.StatusPaid {
		t.Fatalf("sale status = %q, want paid", got.Status)
	}

	// paid is terminal: retry must conflict and change nothing
	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, httptest.NewRequest(http.MethodPost, "/sales/status?id="+sale.ID+"&status=paid", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second transition status = %d, want 409", rec.Code)
	}
	var resp httpx.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "invalid_transition" {
		t.Fatalf("error = %q", resp.Error)
	}
	after, err := svc.Get(sale.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.Status != models.StatusPaid {
		t.Fatalf("row mutated by failed transition: %q", after.Status)
	}
}

func TestSaleStatusNotFound(t *testing.T) {
	h := NewSaleHandler(services.NewSaleService(setupTestDB(t)))
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, httptest.NewRequest(http.MethodPost, "/sales/status?id=ghost&status=paid", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSaleStatusMissingParams(t *testing.T) {
	h := NewSaleHandler(services.NewSaleService(setupTestDB(t)))
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, httptest.NewRequest(http.MethodPost, "/sales/status", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
