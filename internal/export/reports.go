package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ProductsSheet       = "Products"
	SalesDetailsSheet   = "Sales details"
	SalesSummarySheet   = "Summary"
	ProductSummarySheet = "Product summary"
	dateLayout          = "2006-01-02"
)

// VATRate is included in every stored unit price
var VATRate = decimal.RequireFromString("0.19")

var (
	productsHeader       = []interface{}{"ID", "Product", "Category", "Supplier", "Quantity", "Unit", "Unit price", "Price excl. VAT", "Dimensions", "Alert threshold"}
	salesDetailsHeader   = []interface{}{"Order ID", "Date", "Customer", "Product", "Quantity", "Unit price", "Total"}
	salesSummaryHeader   = []interface{}{"Total orders", "Total revenue", "Period start", "Period end", "Generated on"}
	productSummaryHeader = []interface{}{"Product", "Quantity", "Total"}
)

// NetOfVAT strips VATRate from a VAT-inclusive price
func NetOfVAT(price decimal.Decimal) decimal.Decimal {
	return price.Div(decimal.NewFromInt(1).Add(VATRate)).Round(model.PriceScale)
}

// Dimensions renders width x height in centimetres when both are under a
// metre and in metres otherwise. Empty unless both are set.
func Dimensions(p model.Product) string {
	if p.Width == nil || p.Height == nil {
		return ""
	}
	w, h := *p.Width, *p.Height
	if w < 1 && h < 1 {
		return fmt.Sprintf("%.1f x %.1f cm", w*100, h*100)
	}
	return fmt.Sprintf("%.2f x %.2f m", w, h)
}

// ProductsWorkbook writes the full product list
func ProductsWorkbook(w io.Writer, products []model.Product) error {
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		category, supplier := "", ""
		if p.Category != nil {
			category = p.Category.Name
		}
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}
		rows = append(rows, []interface{}{
			p.ID.String(), p.Name, category, supplier, p.Quantity, p.MeasureUnit.Label(),
			p.UnitPrice.InexactFloat64(), NetOfVAT(p.UnitPrice).InexactFloat64(),
			Dimensions(p), p.AlertThreshold,
		})
	}
	return writeSheet(w, ProductsSheet, productsHeader, rows)
}

// SalesReport is the input of SalesReportWorkbook. Names are looked up by id;
// an unknown product falls back to its id, an unknown customer to blank.
type SalesReport struct {
	From          *time.Time
	To            *time.Time
	GeneratedAt   time.Time
	Orders        []model.SalesOrder
	CustomerNames map[uuid.UUID]string
	ProductNames  map[uuid.UUID]string
}

func (r *SalesReport) productName(id uuid.UUID) string {
	if name, ok := r.ProductNames[id]; ok {
		return name
	}
	return id.String()
}

func (r *SalesReport) customerName(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return r.CustomerNames[*id]
}

// SalesReportWorkbook writes line details, a period summary and per-product totals
func SalesReportWorkbook(w io.Writer, report *SalesReport) error {
	type productTotal struct {
		name     string
		quantity int
		total    decimal.Decimal
	}
	byProduct := map[uuid.UUID]*productTotal{}

	var details [][]interface{}
	revenue := decimal.Zero
	for _, order := range report.Orders {
		revenue = revenue.Add(order.TotalAmount)
		for i := range order.Items {
			item := &order.Items[i]
			name := report.productName(item.ProductID)
			line := item.LineTotal()
			details = append(details, []interface{}{
				order.ID.String(), order.OrderDate.Format(timestampLayout), report.customerName(order.CustomerID),
				name, item.Quantity, item.UnitPrice.InexactFloat64(), line.InexactFloat64(),
			})

			pt, ok := byProduct[item.ProductID]
			if !ok {
				pt = &productTotal{name: name, total: decimal.Zero}
				byProduct[item.ProductID] = pt
			}
			pt.quantity += item.Quantity
			pt.total = pt.total.Add(line)
		}
	}

	totals := make([]*productTotal, 0, len(byProduct))
	for _, pt := range byProduct {
		totals = append(totals, pt)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].name < totals[j].name })
	productRows := make([][]interface{}, 0, len(totals))
	for _, pt := range totals {
		productRows = append(productRows, []interface{}{pt.name, pt.quantity, pt.total.InexactFloat64()})
	}

	periodStart, periodEnd := "All time", "Present"
	if report.From != nil {
		periodStart = report.From.Format(dateLayout)
	}
	if report.To != nil {
		periodEnd = report.To.Format(dateLayout)
	}
	summary := [][]interface{}{{
		len(report.Orders), revenue.InexactFloat64(), periodStart, periodEnd,
		report.GeneratedAt.Format(timestampLayout),
	}}

	return writeSheets(w,
		sheetData{name: SalesDetailsSheet, header: salesDetailsHeader, rows: details},
		sheetData{name: SalesSummarySheet, header: salesSummaryHeader, rows: summary},
		sheetData{name: ProductSummarySheet, header: productSummaryHeader, rows: productRows},
	)
}
