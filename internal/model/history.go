package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// History rows are append only. They use an integer key so that rows written
// in the same instant still sort in insertion order.

type PriceHistory struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	OldPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"old_price"`
	NewPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"new_price"`
	ChangedAt time.Time       `gorm:"not null;index" json:"changed_at"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}

type StockMovement struct {
	ID              uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"product_id"`
	QuantityChanged int           `gorm:"not null" json:"quantity_changed"` // signed
	ReferenceType   ReferenceType `gorm:"type:varchar(20);not null" json:"reference_type"`
	ReferenceID     *uuid.UUID    `gorm:"type:uuid;index" json:"reference_id"`
	Notes           *string       `gorm:"type:text" json:"notes"`
	Timestamp       time.Time     `gorm:"not null;index" json:"timestamp"`
}

type EditHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	FieldName string    `gorm:"type:varchar(50);not null" json:"field_name"`
	OldValue  *string   `gorm:"type:varchar(500)" json:"old_value"`
	NewValue  *string   `gorm:"type:varchar(500)" json:"new_value"`
	ChangedAt time.Time `gorm:"not null;index" json:"changed_at"`
}

func (EditHistory) TableName() string {
	return "edit_history"
}

// CreationField is the field name of the row written when a product is created
const CreationField = "creation"
