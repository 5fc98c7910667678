package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Opt is an optional patch value. Set distinguishes "not provided" from
// "set to the zero value"; for pointer types a nil Value clears the field.
// Null records an explicit JSON null.
type Opt[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// UnmarshalJSON marks the option as set whenever the key is present, including null
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// ProductPatch lists every attribute of a product that an update may change
type ProductPatch struct {
	Name           Opt[string]            `json:"name"`
	Description    Opt[*string]           `json:"description"`
	MaterialType   Opt[*string]           `json:"material_type"`
	Width          Opt[*float64]          `json:"width"`
	Height         Opt[*float64]          `json:"height"`
	Quantity       Opt[int]               `json:"quantity"`
	UnitPrice      Opt[decimal.Decimal]   `json:"unit_price"`
	AlertThreshold Opt[int]               `json:"alert_threshold"`
	MeasureUnit    Opt[model.MeasureUnit] `json:"measure_unit"`
	CategoryID     Opt[*uuid.UUID]        `json:"category_id"`
	SupplierID     Opt[*uuid.UUID]        `json:"supplier_id"`
}

// Validate rejects nulls on attributes that have no empty state
func (p ProductPatch) Validate() error {
	nulls := []struct {
		field string
		null  bool
	}{
		{"name", p.Name.Null},
		{"quantity", p.Quantity.Null},
		{"unit_price", p.UnitPrice.Null},
		{"alert_threshold", p.AlertThreshold.Null},
		{"measure_unit", p.MeasureUnit.Null},
	}
	for _, n := range nulls {
		if n.null {
			return fmt.Errorf("%w: %s cannot be null", ErrInvalidPatch, n.field)
		}
	}
	return nil
}

// FieldChange is one changed attribute, values rendered as stored in edit history
type FieldChange struct {
	Field    string
	OldValue *string
	NewValue *string
	apply    func(p *model.Product)
}

type PriceChange struct {
	OldPrice decimal.Decimal
	NewPrice decimal.Decimal
}

// ProductDiff is the outcome of comparing a patch against a product
type ProductDiff struct {
	Changes       []FieldChange
	Price         *PriceChange
	QuantityDelta int
}

func (d ProductDiff) Empty() bool {
	return len(d.Changes) == 0
}

// Apply commits the new values to p
func (d ProductDiff) Apply(p *model.Product) {
	for _, c := range d.Changes {
		c.apply(p)
	}
}

// DiffProduct compares patch against current by value. It has no side effects.
func DiffProduct(current *model.Product, patch ProductPatch) ProductDiff {
	var diff ProductDiff
	add := func(field string, oldValue, newValue *string, apply func(p *model.Product)) {
		diff.Changes = append(diff.Changes, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue, apply: apply})
	}

	if v := patch.Name; v.Set && v.Value != current.Name {
		add("name", strPtr(current.Name), strPtr(v.Value), func(p *model.Product) { p.Name = v.Value })
	}
	if v := patch.Description; v.Set && !equalPtr(v.Value, current.Description) {
		add("description", current.Description, v.Value, func(p *model.Product) { p.Description = v.Value })
	}
	if v := patch.MaterialType; v.Set && !equalPtr(v.Value, current.MaterialType) {
		add("material_type", current.MaterialType, v.Value, func(p *model.Product) { p.MaterialType = v.Value })
	}
	if v := patch.Width; v.Set && !equalPtr(v.Value, current.Width) {
		add("width", renderFloat(current.Width), renderFloat(v.Value), func(p *model.Product) { p.Width = v.Value })
	}
	if v := patch.Height; v.Set && !equalPtr(v.Value, current.Height) {
		add("height", renderFloat(current.Height), renderFloat(v.Value), func(p *model.Product) { p.Height = v.Value })
	}
	if v := patch.Quantity; v.Set && v.Value != current.Quantity {
		diff.QuantityDelta = v.Value - current.Quantity
		add("quantity", strPtr(strconv.Itoa(current.Quantity)), strPtr(strconv.Itoa(v.Value)), func(p *model.Product) { p.Quantity = v.Value })
	}
	if v := patch.UnitPrice; v.Set {
		newPrice := model.RoundPrice(v.Value)
		if !newPrice.Equal(current.UnitPrice) {
			diff.Price = &PriceChange{OldPrice: current.UnitPrice, NewPrice: newPrice}
			add("unit_price", strPtr(current.UnitPrice.String()), strPtr(newPrice.String()), func(p *model.Product) { p.UnitPrice = newPrice })
		}
	}
	if v := patch.AlertThreshold; v.Set && v.Value != current.AlertThreshold {
		add("alert_threshold", strPtr(strconv.Itoa(current.AlertThreshold)), strPtr(strconv.Itoa(v.Value)), func(p *model.Product) { p.AlertThreshold = v.Value })
	}
	if v := patch.MeasureUnit; v.Set && v.Value != current.MeasureUnit {
		add("measure_unit", strPtr(string(current.MeasureUnit)), strPtr(string(v.Value)), func(p *model.Product) { p.MeasureUnit = v.Value })
	}
	if v := patch.CategoryID; v.Set && !equalPtr(v.Value, current.CategoryID) {
		add("category_id", renderUUID(current.CategoryID), renderUUID(v.Value), func(p *model.Product) { p.CategoryID = v.Value })
	}
	if v := patch.SupplierID; v.Set && !equalPtr(v.Value, current.SupplierID) {
		add("supplier_id", renderUUID(current.SupplierID), renderUUID(v.Value), func(p *model.Product) { p.SupplierID = v.Value })
	}

	return diff
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtr(s string) *string {
	return &s
}

func renderFloat(v *float64) *string {
	if v == nil {
		return nil
	}
	return strPtr(strconv.FormatFloat(*v, 'f', -1, 64))
}

func renderUUID(v *uuid.UUID) *string {
	if v == nil {
		return nil
	}
	return strPtr(v.String())
}
