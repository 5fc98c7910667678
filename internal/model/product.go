package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultAlertThreshold = 10

// PriceScale is the number of decimal places every money column stores
const PriceScale = 2

// RoundPrice rounds half away from zero to PriceScale, as numeric(p,2) does
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(PriceScale)
}

type Product struct {
	BaseModel
	Name         string   `gorm:"type:varchar(100);not null" json:"name"`
	Description  *string  `gorm:"type:text" json:"description"`
	MaterialType *string  `gorm:"type:varchar(50)" json:"material_type"`
	Width        *float64 `json:"width"`
	Height       *float64 `json:"height"`

	Quantity int `gorm:"not null" json:"quantity"`
	// InitialQuantity is the quantity at creation and never changes afterwards
	InitialQuantity int             `gorm:"not null" json:"initial_quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"` // VAT inclusive
	AlertThreshold  int             `gorm:"not null" json:"alert_threshold"`
	MeasureUnit     MeasureUnit     `gorm:"type:varchar(20);not null;default:'PIECE'" json:"measure_unit"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// IsLowStock reports whether the product is at or below its alert threshold
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.AlertThreshold
}

// StockValue is quantity * unit price
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
