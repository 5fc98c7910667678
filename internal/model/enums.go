package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MeasureUnit is the unit a product is sold in. The stored values are the
// vocabulary of existing databases and must not change.
type MeasureUnit string

const (
	UnitPiece            MeasureUnit = "PIECE"
	UnitMeter            MeasureUnit = "METER"
	UnitCentimeter       MeasureUnit = "CENTIMETER"
	UnitSquareMeter      MeasureUnit = "SQUARE_METER"
	UnitSquareCentimeter MeasureUnit = "SQUARE_CENTIMETER"
	UnitRoll             MeasureUnit = "ROLL"
	UnitSheet            MeasureUnit = "SHEET"
	UnitTop              MeasureUnit = "TOP"
	UnitLiter            MeasureUnit = "LITER"
)

var measureUnitLabels = map[MeasureUnit]string{
	UnitPiece:            "Bucata",
	UnitMeter:            "Metru",
	UnitCentimeter:       "Centimetru",
	UnitSquareMeter:      "Metru patrat",
	UnitSquareCentimeter: "Centimetru patrat",
	UnitRoll:             "Rola",
	UnitSheet:            "Coala",
	UnitTop:              "Top",
	UnitLiter:            "Litru",
}

// MeasureUnits lists every known unit in display order
var MeasureUnits = []MeasureUnit{
	UnitPiece, UnitMeter, UnitCentimeter, UnitSquareMeter, UnitSquareCentimeter,
	UnitRoll, UnitSheet, UnitTop, UnitLiter,
}

func (u MeasureUnit) Valid() bool {
	_, ok := measureUnitLabels[u]
	return ok
}

// Label returns the display name printed on invoices and exports
func (u MeasureUnit) Label() string {
	return measureUnitLabels[u]
}

func (u MeasureUnit) Value() (driver.Value, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("invalid measure unit %q", string(u))
	}
	return string(u), nil
}

func (u *MeasureUnit) Scan(value interface{}) error {
	parsed, err := scanTag(value)
	if err != nil {
		return err
	}
	if !MeasureUnit(parsed).Valid() {
		return fmt.Errorf("invalid measure unit %q", parsed)
	}
	*u = MeasureUnit(parsed)
	return nil
}

func (u *MeasureUnit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !MeasureUnit(s).Valid() {
		return fmt.Errorf("invalid measure unit %q", s)
	}
	*u = MeasureUnit(s)
	return nil
}

// ReferenceType tags the cause of a stock movement
type ReferenceType string

const (
	RefSale       ReferenceType = "sale"
	RefPurchase   ReferenceType = "purchase"
	RefAdjustment ReferenceType = "adjustment"
)

func (r ReferenceType) Valid() bool {
	switch r {
	case RefSale, RefPurchase, RefAdjustment:
		return true
	}
	return false
}

func (r ReferenceType) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid reference type %q", string(r))
	}
	return string(r), nil
}

func (r *ReferenceType) Scan(value interface{}) error {
	parsed, err := scanTag(value)
	if err != nil {
		return err
	}
	if !ReferenceType(parsed).Valid() {
		return fmt.Errorf("invalid reference type %q", parsed)
	}
	*r = ReferenceType(parsed)
	return nil
}

// PurchaseStatus is the lifecycle state of a purchase order.
// pending -> received and pending -> cancelled; both targets are terminal.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseReceived  PurchaseStatus = "received"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchasePending, PurchaseReceived, PurchaseCancelled:
		return true
	}
	return false
}

func (s PurchaseStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid purchase order status %q", string(s))
	}
	return string(s), nil
}

func (s *PurchaseStatus) Scan(value interface{}) error {
	parsed, err := scanTag(value)
	if err != nil {
		return err
	}
	if !PurchaseStatus(parsed).Valid() {
		return fmt.Errorf("invalid purchase order status %q", parsed)
	}
	*s = PurchaseStatus(parsed)
	return nil
}

func scanTag(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into tag", value)
	}
}
