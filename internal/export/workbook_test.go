package export

import (
	"bytes"
	"testing"
	"time"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestLowStockWorkbook(t *testing.T) {
	products := []model.Product{
		{
			Name:           "Vinyl roll",
			Quantity:       3,
			AlertThreshold: 10,
			UnitPrice:      decimal.RequireFromString("45.50"),
			MeasureUnit:    model.UnitRoll,
			Category:       &model.Category{Name: "Print media"},
		},
		{Name: "Foam board", Quantity: 25, AlertThreshold: 10, MeasureUnit: model.UnitSheet},
	}

	var buf bytes.Buffer
	if err := LowStockWorkbook(&buf, products); err != nil {
		t.Fatalf("LowStockWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(LowStockSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Product" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Vinyl roll" || rows[1][1] != "Print media" || rows[1][5] != "Rola" || rows[1][7] != "17" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[2][7] != "0" {
		t.Errorf("suggested restock for well-stocked product = %q, want 0", rows[2][7])
	}
}

func TestStockMovementWorkbook(t *testing.T) {
	orderID := uuid.New()
	note := "Manual adjustment"
	movements := []model.StockMovement{
		{ProductID: uuid.New(), QuantityChanged: -5, ReferenceType: model.RefSale, ReferenceID: &orderID, Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
		{ProductID: uuid.New(), QuantityChanged: 4, ReferenceType: model.RefAdjustment, Notes: &note, Timestamp: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	if err := StockMovementWorkbook(&buf, movements); err != nil {
		t.Fatalf("StockMovementWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(StockMovementSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1][0] != "2026-03-01 09:30:00" || rows[1][2] != "-5" || rows[1][3] != "sale" || rows[1][4] != orderID.String() {
		t.Errorf("sale row = %v", rows[1])
	}
	if rows[2][5] != note {
		t.Errorf("adjustment notes = %v", rows[2])
	}
}

func TestSuggestedRestock(t *testing.T) {
	cases := []struct {
		qty, threshold, want int
	}{
		{0, 10, 20},
		{10, 10, 10},
		{20, 10, 0},
		{-3, 5, 13},
	}
	for _, c := range cases {
		got := SuggestedRestock(model.Product{Quantity: c.qty, AlertThreshold: c.threshold})
		if got != c.want {
			t.Errorf("SuggestedRestock(qty=%d, threshold=%d) = %d, want %d", c.qty, c.threshold, got, c.want)
		}
	}
}
