package export

import (
	"fmt"
	"io"

	"go-inventory-ledger/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	LowStockSheet      = "Low stock"
	StockMovementSheet = "Stock movements"
	timestampLayout    = "2006-01-02 15:04:05"
)

var (
	lowStockHeader = []interface{}{"Product", "Category", "Supplier", "Quantity", "Alert threshold", "Unit", "Unit price", "Suggested restock"}
	movementHeader = []interface{}{"Date", "Product ID", "Change", "Reference", "Reference ID", "Notes"}
)

// LowStockWorkbook writes a restock report. Suggested restock brings each
// product back to twice its alert threshold.
func LowStockWorkbook(w io.Writer, products []model.Product) error {
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
			p.Name, category, supplier, p.Quantity, p.AlertThreshold,
			p.MeasureUnit.Label(), p.UnitPrice.InexactFloat64(), SuggestedRestock(p),
		})
	}
	return writeSheet(w, LowStockSheet, lowStockHeader, rows)
}

// SuggestedRestock is the quantity needed to reach twice the alert threshold
func SuggestedRestock(p model.Product) int {
	target := 2 * p.AlertThreshold
	if p.Quantity >= target {
		return 0
	}
	return target - p.Quantity
}

func StockMovementWorkbook(w io.Writer, movements []model.StockMovement) error {
	rows := make([][]interface{}, 0, len(movements))
	for _, m := range movements {
		refID, notes := "", ""
		if m.ReferenceID != nil {
			refID = m.ReferenceID.String()
		}
		if m.Notes != nil {
			notes = *m.Notes
		}
		rows = append(rows, []interface{}{
			m.Timestamp.Format(timestampLayout), m.ProductID.String(), m.QuantityChanged,
			string(m.ReferenceType), refID, notes,
		})
	}
	return writeSheet(w, StockMovementSheet, movementHeader, rows)
}

func writeSheet(w io.Writer, sheet string, header []interface{}, rows [][]interface{}) error {
	return writeSheets(w, sheetData{name: sheet, header: header, rows: rows})
}

type sheetData struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// writeSheets writes one bold-headed sheet per entry, in order
func writeSheets(w io.Writer, sheets ...sheetData) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		if i == 0 {
			err = f.SetSheetName("Sheet1", sheet.name)
		} else {
			_, err = f.NewSheet(sheet.name)
		}
		if err != nil {
			return err
		}
		if err := fillSheet(f, sheet, bold); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet.name, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func fillSheet(f *excelize.File, sheet sheetData, headerStyle int) error {
	if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(sheet.header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.name, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.SetColWidth(sheet.name, "A", lastCol, 18)
}
