package service

import (
	"testing"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	events []ws.Event
}

func (r *recordingPublisher) Publish(e ws.Event) {
	r.events = append(r.events, e)
}

func (r *recordingPublisher) actions() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type testEnv struct {
	db        *gorm.DB
	inventory InventoryService
	orders    OrderService
	catalog   CatalogService
	dashboard DashboardService
	events    *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, false)
}

func newTestEnvWith(t *testing.T, allowNegativeStock bool) *testEnv {
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
	events := &recordingPublisher{}
	log := zap.NewNop()

	return &testEnv{
		db:        db,
		inventory: NewInventoryService(productRepo, historyRepo, categoryRepo, supplierRepo, db, events, log),
		orders:    NewOrderService(orderRepo, productRepo, historyRepo, customerRepo, supplierRepo, db, events, log, allowNegativeStock),
		catalog:   NewCatalogService(categoryRepo, supplierRepo, customerRepo),
		dashboard: NewDashboardService(historyRepo),
		events:    events,
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (e *testEnv) createProduct(t *testing.T, name string, quantity int, unitPrice string) *model.Product {
	t.Helper()
	p, err := e.inventory.CreateProduct(&NewProduct{
		Name:        name,
		Quantity:    quantity,
		UnitPrice:   price(unitPrice),
		MeasureUnit: model.UnitPiece,
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s): %v", name, err)
	}
	return p
}

func (e *testEnv) reload(t *testing.T, id uuid.UUID) *model.Product {
	t.Helper()
	p, err := e.inventory.GetProduct(id)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	return p
}

func (e *testEnv) count(t *testing.T, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(m).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", m, err)
	}
	return n
}

func (e *testEnv) assertBalanced(t *testing.T, id uuid.UUID) {
	t.Helper()
	rec, err := e.inventory.Reconcile(id)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !rec.Balanced {
		t.Fatalf("ledger out of balance: initial %d + movements %d != quantity %d",
			rec.InitialQuantity, rec.MovementSum, rec.Quantity)
	}
}
