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

func floatPtr(f float64) *float64 { return &f }

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func sheetRows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", sheet, err)
	}
	return rows
}

func TestNetOfVAT(t *testing.T) {
	cases := map[string]string{"100": "84.03", "119": "100", "0": "0", "12.50": "10.5"}
	for in, want := range cases {
		if got := NetOfVAT(decimal.RequireFromString(in)); !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("NetOfVAT(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestDimensions(t *testing.T) {
	cases := []struct {
		width, height *float64
		want          string
	}{
		{floatPtr(0.5), floatPtr(0.3), "50.0 x 30.0 cm"},
		{floatPtr(1.2), floatPtr(0.5), "1.20 x 0.50 m"},
		{floatPtr(1), nil, ""},
		{nil, nil, ""},
	}
	for _, c := range cases {
		if got := Dimensions(model.Product{Width: c.width, Height: c.height}); got != c.want {
			t.Errorf("Dimensions(%v, %v) = %q, want %q", c.width, c.height, got, c.want)
		}
	}
}

func TestProductsWorkbook(t *testing.T) {
	id := uuid.New()
	products := []model.Product{
		{
			BaseModel:      model.BaseModel{ID: id},
			Name:           "Vinyl roll",
			Quantity:       12,
			UnitPrice:      decimal.RequireFromString("100"),
			AlertThreshold: 5,
			MeasureUnit:    model.UnitRoll,
			Width:          floatPtr(1.2),
			Height:         floatPtr(50),
			Category:       &model.Category{Name: "Print media"},
			Supplier:       &model.Supplier{Name: "Media Supply"},
		},
		{Name: "Foam board", Quantity: 3, UnitPrice: decimal.RequireFromString("7.25"), MeasureUnit: model.UnitSheet},
	}

	var buf bytes.Buffer
	if err := ProductsWorkbook(&buf, products); err != nil {
		t.Fatalf("ProductsWorkbook: %v", err)
	}
	rows := sheetRows(t, openWorkbook(t, &buf), ProductsSheet)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][7] != "Price excl. VAT" {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{id.String(), "Vinyl roll", "Print media", "Media Supply", "12", "Rola", "100", "84.03", "1.20 x 50.00 m", "5"}
	for i, w := range want {
		if rows[1][i] != w {
			t.Errorf("column %d = %q, want %q", i, rows[1][i], w)
		}
	}
	if rows[2][2] != "" || rows[2][3] != "" || rows[2][7] != "6.09" {
		t.Errorf("uncategorised row = %v", rows[2])
	}
}

func TestSalesReportWorkbook(t *testing.T) {
	vinyl, ink := uuid.New(), uuid.New()
	gone := uuid.MustParse("0a3c5e1f-6b2d-4c8e-9f10-2a3b4c5d6e7f")
	customer := uuid.New()
	day := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	report := &SalesReport{
		From:        &from,
		GeneratedAt: time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
		Orders: []model.SalesOrder{
			{
				BaseModel:   model.BaseModel{ID: uuid.New()},
				CustomerID:  &customer,
				OrderDate:   day.AddDate(0, 0, 1),
				TotalAmount: decimal.RequireFromString("25"),
				Items: []model.SalesOrderItem{
					{ProductID: vinyl, Quantity: 2, UnitPrice: decimal.RequireFromString("10")},
					{ProductID: gone, Quantity: 1, UnitPrice: decimal.RequireFromString("5")},
				},
			},
			{
				BaseModel:   model.BaseModel{ID: uuid.New()},
				OrderDate:   day,
				TotalAmount: decimal.RequireFromString("33"),
				Items: []model.SalesOrderItem{
					{ProductID: vinyl, Quantity: 1, UnitPrice: decimal.RequireFromString("12")},
					{ProductID: ink, Quantity: 3, UnitPrice: decimal.RequireFromString("7")},
				},
			},
		},
		CustomerNames: map[uuid.UUID]string{customer: "Print Shop SRL"},
		ProductNames:  map[uuid.UUID]string{vinyl: "Vinyl", ink: "Ink"},
	}

	var buf bytes.Buffer
	if err := SalesReportWorkbook(&buf, report); err != nil {
		t.Fatalf("SalesReportWorkbook: %v", err)
	}
	f := openWorkbook(t, &buf)

	if sheets := f.GetSheetList(); len(sheets) != 3 || sheets[0] != SalesDetailsSheet || sheets[1] != SalesSummarySheet || sheets[2] != ProductSummarySheet {
		t.Fatalf("sheets = %v", sheets)
	}

	details := sheetRows(t, f, SalesDetailsSheet)
	if len(details) != 5 {
		t.Fatalf("got %d detail rows, want 5", len(details))
	}
	if details[1][1] != "2026-03-02 09:30:00" || details[1][2] != "Print Shop SRL" || details[1][3] != "Vinyl" || details[1][6] != "20" {
		t.Errorf("first detail row = %v", details[1])
	}
	if details[2][3] != gone.String() {
		t.Errorf("deleted product name = %q, want its id", details[2][3])
	}
	if details[3][2] != "" {
		t.Errorf("walk-in customer = %q, want blank", details[3][2])
	}

	summary := sheetRows(t, f, SalesSummarySheet)
	want := []string{"2", "58", "2026-03-01", "Present", "2026-03-05 08:00:00"}
	for i, w := range want {
		if summary[1][i] != w {
			t.Errorf("summary column %d = %q, want %q", i, summary[1][i], w)
		}
	}

	byProduct := sheetRows(t, f, ProductSummarySheet)
	if len(byProduct) != 4 {
		t.Fatalf("got %d product summary rows, want 4", len(byProduct))
	}
	if got := byProduct[2]; got[0] != "Ink" || got[1] != "3" || got[2] != "21" {
		t.Errorf("ink totals = %v", got)
	}
	if got := byProduct[3]; got[0] != "Vinyl" || got[1] != "3" || got[2] != "32" {
		t.Errorf("vinyl totals = %v", got)
	}
}
