package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesOrder struct {
	BaseModel
	CustomerID  *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id"`
	OrderDate   time.Time        `gorm:"not null" json:"order_date"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"` // Σ quantity * unit_price
	Notes       *string          `gorm:"type:text" json:"notes"`
	Items       []SalesOrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

type SalesOrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Position  int             `gorm:"not null" json:"position"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Width     *float64        `json:"width"`
	Height    *float64        `json:"height"`
	Notes     *string         `gorm:"type:text" json:"notes"`
}

// LineTotal is quantity * unit price
func (i *SalesOrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type PurchaseOrder struct {
	BaseModel
	SupplierID  *uuid.UUID          `gorm:"type:uuid;index" json:"supplier_id"`
	OrderDate   time.Time           `gorm:"not null" json:"order_date"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
	Status      PurchaseStatus      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReceivedAt  *time.Time          `json:"received_at,omitempty"`
	Notes       *string             `gorm:"type:text" json:"notes"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

type PurchaseOrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Position  int             `gorm:"not null" json:"position"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Notes     *string         `gorm:"type:text" json:"notes"`
}

func (i *PurchaseOrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AllModels is the migration set
func AllModels() []interface{} {
	return []interface{}{
		&Category{}, &Supplier{}, &Customer{}, &Product{},
		&PriceHistory{}, &StockMovement{}, &EditHistory{},
		&SalesOrder{}, &SalesOrderItem{}, &PurchaseOrder{}, &PurchaseOrderItem{},
	}
}
