package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	productRepo := repository.NewProductRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	log := zap.NewNop()

	invService := service.NewInventoryService(productRepo, historyRepo, categoryRepo, supplierRepo, db, ws.Discard, log)
	orderService := service.NewOrderService(orderRepo, productRepo, historyRepo, customerRepo, supplierRepo, db, ws.Discard, log, false)

	catalogService := service.NewCatalogService(categoryRepo, supplierRepo, customerRepo)

	handlers := &Handlers{
		Inventory: NewInventoryHandler(invService),
		Orders:    NewOrderHandler(orderService),
		Catalog:   NewCatalogHandler(catalogService),
		Dashboard: NewDashboardHandler(service.NewDashboardService(historyRepo)),
		Reports:   NewReportHandler(invService, orderService, catalogService),
	}

	app := fiber.New()
	handlers.Register(app.Group("/api/v1"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

type productEnvelope struct {
	Data struct {
		ID       uuid.UUID `json:"id"`
		Name     string    `json:"name"`
		Quantity int       `json:"quantity"`
	} `json:"data"`
}

func createProduct(t *testing.T, app *fiber.App, name string, quantity int) uuid.UUID {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":         name,
		"quantity":     quantity,
		"unit_price":   "100",
		"measure_unit": "PIECE",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create product: %d %s", status, body)
	}
	var env productEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	return env.Data.ID
}

func TestCreateProductValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"quantity": 1, "unit_price": "1"}},
		{"negative quantity", map[string]interface{}{"name": "X", "quantity": -1, "unit_price": "1"}},
		{"negative price", map[string]interface{}{"name": "X", "quantity": 1, "unit_price": "-1"}},
		{"unknown unit", map[string]interface{}{"name": "X", "quantity": 1, "unit_price": "1", "measure_unit": "GALLON"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, body := doJSON(t, app, http.MethodPost, "/api/v1/products", tt.body); status != fiber.StatusBadRequest {
				t.Errorf("status = %d, body %s", status, body)
			}
		})
	}
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "Vinyl", 50)
	base := "/api/v1/products/" + id.String()

	status, body := doJSON(t, app, http.MethodPatch, base, map[string]interface{}{"unit_price": "120", "description": "matte"})
	if status != fiber.StatusOK {
		t.Fatalf("patch: %d %s", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, base+"/history", nil)
	if status != fiber.StatusOK {
		t.Fatalf("history: %d %s", status, body)
	}
	var history []struct {
		FieldName string `json:"field_name"`
	}
	json.Unmarshal(body, &history)
	if len(history) != 3 {
		t.Errorf("got %d history rows, want creation + 2 edits: %s", len(history), body)
	}

	status, body = doJSON(t, app, http.MethodGet, base+"/price-history", nil)
	var prices []json.RawMessage
	json.Unmarshal(body, &prices)
	if status != fiber.StatusOK || len(prices) != 1 {
		t.Errorf("price history: %d %s", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, base+"/reconcile", nil)
	var rec service.Reconciliation
	json.Unmarshal(body, &rec)
	if status != fiber.StatusOK || !rec.Balanced {
		t.Errorf("reconcile: %d %s", status, body)
	}

	if status, body := doJSON(t, app, http.MethodDelete, base, nil); status != fiber.StatusOK {
		t.Fatalf("delete: %d %s", status, body)
	}
	if status, _ := doJSON(t, app, http.MethodGet, base, nil); status != fiber.StatusNotFound {
		t.Errorf("get after delete: %d, want 404", status)
	}
}

func TestPatchValidationAndNotFound(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "Vinyl", 5)

	if status, _ := doJSON(t, app, http.MethodPatch, "/api/v1/products/"+id.String(), map[string]interface{}{"name": " "}); status != fiber.StatusBadRequest {
		t.Errorf("blank name: %d, want 400", status)
	}
	if status, _ := doJSON(t, app, http.MethodPatch, "/api/v1/products/"+id.String(), map[string]interface{}{"alert_threshold": -1}); status != fiber.StatusBadRequest {
		t.Errorf("negative threshold: %d, want 400", status)
	}
	if status, _ := doJSON(t, app, http.MethodPatch, "/api/v1/products/not-a-uuid", map[string]interface{}{"name": "X"}); status != fiber.StatusBadRequest {
		t.Errorf("bad id: %d, want 400", status)
	}
	if status, _ := doJSON(t, app, http.MethodPatch, "/api/v1/products/"+uuid.NewString(), map[string]interface{}{"name": "X"}); status != fiber.StatusNotFound {
		t.Errorf("unknown id: %d, want 404", status)
	}
}

func TestPatchRejectsNullOnValueFields(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "Vinyl", 50)
	base := "/api/v1/products/" + id.String()

	for _, field := range []string{"quantity", "unit_price", "alert_threshold", "name"} {
		if status, body := doJSON(t, app, http.MethodPatch, base, map[string]interface{}{field: nil}); status != fiber.StatusBadRequest {
			t.Errorf("null %s: %d %s, want 400", field, status, body)
		}
	}

	status, body := doJSON(t, app, http.MethodGet, base, nil)
	var product struct {
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unit_price"`
	}
	json.Unmarshal(body, &product)
	if status != fiber.StatusOK || product.Quantity != 50 || product.UnitPrice != "100" {
		t.Errorf("product after null patches: %d %s", status, body)
	}

	if status, body := doJSON(t, app, http.MethodPatch, base, map[string]interface{}{"description": nil}); status != fiber.StatusOK {
		t.Errorf("null description: %d %s, want 200", status, body)
	}
}

func TestSalesOrderOverHTTP(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "Vinyl", 3)

	order := map[string]interface{}{"items": []map[string]interface{}{
		{"product_id": id, "quantity": 2, "unit_price": "10"},
	}}
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/sales-orders", order)
	if status != fiber.StatusCreated {
		t.Fatalf("create sales order: %d %s", status, body)
	}

	if status, body := doJSON(t, app, http.MethodPost, "/api/v1/sales-orders", order); status != fiber.StatusConflict {
		t.Errorf("oversell: %d %s, want 409", status, body)
	}

	empty := map[string]interface{}{"items": []map[string]interface{}{}}
	if status, _ := doJSON(t, app, http.MethodPost, "/api/v1/sales-orders", empty); status != fiber.StatusBadRequest {
		t.Errorf("empty order: %d, want 400", status)
	}

	zero := map[string]interface{}{"items": []map[string]interface{}{{"product_id": id, "quantity": 0, "unit_price": "1"}}}
	if status, _ := doJSON(t, app, http.MethodPost, "/api/v1/sales-orders", zero); status != fiber.StatusBadRequest {
		t.Errorf("zero quantity: %d, want 400", status)
	}

	missing := map[string]interface{}{"items": []map[string]interface{}{{"product_id": uuid.New(), "quantity": 1, "unit_price": "1"}}}
	if status, _ := doJSON(t, app, http.MethodPost, "/api/v1/sales-orders", missing); status != fiber.StatusNotFound {
		t.Errorf("unknown product: %d, want 404", status)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/products/low-stock", nil)
	var low []json.RawMessage
	json.Unmarshal(body, &low)
	if status != fiber.StatusOK || len(low) != 1 {
		t.Errorf("low stock: %d %s", status, body)
	}
}

func TestPurchaseOrderOverHTTP(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "Ink", 2)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/purchase-orders", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": id, "quantity": 20, "unit_price": "5"}},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create purchase order: %d %s", status, body)
	}
	var created struct {
		Data struct {
			ID     uuid.UUID `json:"id"`
			Status string    `json:"status"`
		} `json:"data"`
	}
	json.Unmarshal(body, &created)
	if created.Data.Status != "pending" {
		t.Errorf("status = %q", created.Data.Status)
	}

	path := "/api/v1/purchase-orders/" + created.Data.ID.String()
	if status, body := doJSON(t, app, http.MethodPost, path+"/receive", nil); status != fiber.StatusOK {
		t.Fatalf("receive: %d %s", status, body)
	}

	_, body = doJSON(t, app, http.MethodGet, "/api/v1/products/"+id.String(), nil)
	var product struct {
		Quantity int `json:"quantity"`
	}
	json.Unmarshal(body, &product)
	if product.Quantity != 22 {
		t.Errorf("quantity = %d, want 22", product.Quantity)
	}

	if status, _ := doJSON(t, app, http.MethodGet, "/api/v1/purchase-orders?status=bogus", nil); status != fiber.StatusBadRequest {
		t.Errorf("bad status filter: %d, want 400", status)
	}
	if status, _ := doJSON(t, app, http.MethodPost, "/api/v1/purchase-orders/"+uuid.NewString()+"/receive", nil); status != fiber.StatusNotFound {
		t.Errorf("receive unknown: %d, want 404", status)
	}
}

func TestCatalogOverHTTP(t *testing.T) {
	app := newTestApp(t)

	if status, _ := doJSON(t, app, http.MethodPost, "/api/v1/suppliers", map[string]interface{}{"name": "Acme", "email": "nope"}); status != fiber.StatusBadRequest {
		t.Errorf("bad email: %d, want 400", status)
	}

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/categories", map[string]interface{}{"name": "Paper"})
	if status != fiber.StatusCreated {
		t.Fatalf("create category: %d %s", status, body)
	}
	var created struct {
		Data struct {
			ID uuid.UUID `json:"id"`
		} `json:"data"`
	}
	json.Unmarshal(body, &created)

	path := "/api/v1/categories/" + created.Data.ID.String()
	if status, body := doJSON(t, app, http.MethodPut, path, map[string]interface{}{"name": "Photo paper"}); status != fiber.StatusOK {
		t.Errorf("update: %d %s", status, body)
	}
	if status, _ := doJSON(t, app, http.MethodDelete, path, nil); status != fiber.StatusOK {
		t.Errorf("delete: %d", status)
	}
	if status, _ := doJSON(t, app, http.MethodGet, path, nil); status != fiber.StatusNotFound {
		t.Errorf("get after delete: %d, want 404", status)
	}
}

func TestLowStockReportDownload(t *testing.T) {
	app := newTestApp(t)
	createProduct(t, app, "Scarce", 1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/low-stock.xlsx", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK || resp.Header.Get(fiber.HeaderContentType) != xlsxContentType {
		t.Fatalf("status %d, content type %q", resp.StatusCode, resp.Header.Get(fiber.HeaderContentType))
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Low stock")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "Scarce" {
		t.Errorf("rows = %v", rows)
	}
}

func TestStockMovementsRejectsBadDate(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "Vinyl", 1)

	if status, _ := doJSON(t, app, http.MethodGet, "/api/v1/products/"+id.String()+"/stock-movements?from=yesterday", nil); status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if status, _ := doJSON(t, app, http.MethodGet, "/api/v1/products/"+id.String()+"/stock-movements?from=2026-01-01&to=2026-12-31", nil); status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}

func downloadWorkbook(t *testing.T, app *fiber.App, path string) *excelize.File {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK || resp.Header.Get(fiber.HeaderContentType) != xlsxContentType {
		t.Fatalf("%s: status %d, content type %q", path, resp.StatusCode, resp.Header.Get(fiber.HeaderContentType))
	}
	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestProductsReportDownload(t *testing.T) {
	app := newTestApp(t)
	createProduct(t, app, "Vinyl", 8)

	rows, err := downloadWorkbook(t, app, "/api/v1/reports/products.xlsx").GetRows("Products")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "Vinyl" || rows[1][4] != "8" || rows[1][7] != "84.03" {
		t.Errorf("rows = %v", rows)
	}
}

func TestSalesReportDownload(t *testing.T) {
	app := newTestApp(t)
	id := createProduct(t, app, "Vinyl", 10)
	order := map[string]interface{}{"items": []map[string]interface{}{
		{"product_id": id, "quantity": 3, "unit_price": "10.005"},
	}}
	if status, body := doJSON(t, app, http.MethodPost, "/api/v1/sales-orders", order); status != fiber.StatusCreated {
		t.Fatalf("create sales order: %d %s", status, body)
	}

	f := downloadWorkbook(t, app, "/api/v1/reports/sales.xlsx")
	details, _ := f.GetRows("Sales details")
	if len(details) != 2 || details[1][3] != "Vinyl" || details[1][5] != "10.01" || details[1][6] != "30.03" {
		t.Errorf("details = %v", details)
	}
	summary, _ := f.GetRows("Summary")
	if len(summary) != 2 || summary[1][0] != "1" || summary[1][1] != "30.03" || summary[1][2] != "All time" {
		t.Errorf("summary = %v", summary)
	}

	past := downloadWorkbook(t, app, "/api/v1/reports/sales.xlsx?from=2000-01-01&to=2000-01-31")
	if details, _ := past.GetRows("Sales details"); len(details) != 1 {
		t.Errorf("out-of-range details = %v, want header only", details)
	}
	if summary, _ := past.GetRows("Summary"); summary[1][0] != "0" || summary[1][3] != "2000-01-31" {
		t.Errorf("out-of-range summary = %v", summary)
	}

	if status, _ := doJSON(t, app, http.MethodGet, "/api/v1/reports/sales.xlsx?from=last-week", nil); status != fiber.StatusBadRequest {
		t.Errorf("bad from: %d, want 400", status)
	}
	if status, _ := doJSON(t, app, http.MethodGet, "/api/v1/sales-orders?to=soon", nil); status != fiber.StatusBadRequest {
		t.Errorf("bad sales-orders range: %d, want 400", status)
	}
}
