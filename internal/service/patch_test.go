package service

import (
	"encoding/json"
	"errors"
	"testing"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
)

func TestOptUnmarshalDistinguishesAbsentFromNull(t *testing.T) {
	var patch ProductPatch
	body := `{"name":"Banner","description":null,"alert_threshold":0,"unit_price":"12.40"}`
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !patch.Name.Set || patch.Name.Value != "Banner" {
		t.Errorf("name = %+v", patch.Name)
	}
	if !patch.Description.Set || !patch.Description.Null || patch.Description.Value != nil {
		t.Errorf("description = %+v, want explicit null", patch.Description)
	}
	if patch.Name.Null || patch.AlertThreshold.Null {
		t.Error("non-null values reported as null")
	}
	if !patch.AlertThreshold.Set || patch.AlertThreshold.Value != 0 {
		t.Errorf("alert_threshold = %+v, want set to 0", patch.AlertThreshold)
	}
	if !patch.UnitPrice.Set || !patch.UnitPrice.Value.Equal(price("12.4")) {
		t.Errorf("unit_price = %+v", patch.UnitPrice)
	}
	if patch.Quantity.Set || patch.MaterialType.Set || patch.CategoryID.Set {
		t.Error("absent keys reported as set")
	}
}

func TestOptUnmarshalRejectsBadMeasureUnit(t *testing.T) {
	var patch ProductPatch
	if err := json.Unmarshal([]byte(`{"measure_unit":"GALLON"}`), &patch); err == nil {
		t.Error("expected error for unknown measure unit")
	}
}

func TestProductPatchValidateRejectsNullOnValueFields(t *testing.T) {
	for _, body := range []string{
		`{"name":null}`,
		`{"quantity":null}`,
		`{"unit_price":null}`,
		`{"alert_threshold":null}`,
		`{"measure_unit":null}`,
	} {
		var patch ProductPatch
		if err := json.Unmarshal([]byte(body), &patch); err != nil {
			t.Fatalf("unmarshal %s: %v", body, err)
		}
		if err := patch.Validate(); !errors.Is(err, ErrInvalidPatch) {
			t.Errorf("Validate(%s) = %v, want ErrInvalidPatch", body, err)
		}
	}

	var nullable ProductPatch
	json.Unmarshal([]byte(`{"description":null,"category_id":null,"width":null}`), &nullable)
	if err := nullable.Validate(); err != nil {
		t.Errorf("nullable fields rejected: %v", err)
	}
}

func TestDiffProductRoundsPriceToStoredScale(t *testing.T) {
	current := &model.Product{Name: "Vinyl", UnitPrice: price("10.01")}

	if diff := DiffProduct(current, ProductPatch{UnitPrice: Some(price("10.005"))}); !diff.Empty() {
		t.Errorf("10.005 against stored 10.01 produced %d changes", len(diff.Changes))
	}

	diff := DiffProduct(current, ProductPatch{UnitPrice: Some(price("10.004"))})
	if diff.Price == nil || !diff.Price.NewPrice.Equal(price("10")) {
		t.Fatalf("price change = %+v, want 10.00", diff.Price)
	}
	if got := deref(diff.Changes[0].NewValue); got != "10" {
		t.Errorf("recorded new value = %q, want 10", got)
	}
}

func TestDiffProduct(t *testing.T) {
	desc := "glossy"
	width := 1.5
	category := uuid.New()
	current := &model.Product{
		Name:           "Vinyl",
		Description:    &desc,
		Width:          &width,
		Quantity:       10,
		UnitPrice:      price("20.00"),
		AlertThreshold: 5,
		MeasureUnit:    model.UnitPiece,
		CategoryID:     &category,
	}

	tests := []struct {
		name       string
		patch      ProductPatch
		wantFields []string
		wantDelta  int
		wantPrice  bool
	}{
		{
			name:  "empty patch",
			patch: ProductPatch{},
		},
		{
			name: "same values",
			patch: ProductPatch{
				Name:        Some("Vinyl"),
				Description: Some(strPtr("glossy")),
				Width:       Some(&width),
				UnitPrice:   Some(price("20")),
				CategoryID:  Some(&category),
			},
		},
		{
			name:       "quantity change",
			patch:      ProductPatch{Quantity: Some(4)},
			wantFields: []string{"quantity"},
			wantDelta:  -6,
		},
		{
			name:       "price change",
			patch:      ProductPatch{UnitPrice: Some(price("22.5"))},
			wantFields: []string{"unit_price"},
			wantPrice:  true,
		},
		{
			name: "clear nullable fields",
			patch: ProductPatch{
				Description: Some[*string](nil),
				CategoryID:  Some[*uuid.UUID](nil),
				Height:      Some[*float64](nil),
			},
			wantFields: []string{"description", "category_id"},
		},
		{
			name: "several fields",
			patch: ProductPatch{
				Name:           Some("Vinyl Pro"),
				AlertThreshold: Some(0),
				MeasureUnit:    Some(model.UnitSquareMeter),
			},
			wantFields: []string{"name", "alert_threshold", "measure_unit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := DiffProduct(current, tt.patch)

			var fields []string
			for _, c := range diff.Changes {
				fields = append(fields, c.Field)
			}
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("fields = %v, want %v", fields, tt.wantFields)
			}
			for i := range fields {
				if fields[i] != tt.wantFields[i] {
					t.Errorf("fields = %v, want %v", fields, tt.wantFields)
				}
			}
			if diff.QuantityDelta != tt.wantDelta {
				t.Errorf("quantity delta = %d, want %d", diff.QuantityDelta, tt.wantDelta)
			}
			if (diff.Price != nil) != tt.wantPrice {
				t.Errorf("price change = %+v", diff.Price)
			}
			if diff.Empty() != (len(tt.wantFields) == 0) {
				t.Errorf("Empty() = %v", diff.Empty())
			}
		})
	}
}

func TestDiffProductRendersValues(t *testing.T) {
	current := &model.Product{Name: "Vinyl", Quantity: 10, UnitPrice: price("20")}
	supplier := uuid.New()
	height := 2.25

	diff := DiffProduct(current, ProductPatch{
		Height:     Some(&height),
		SupplierID: Some(&supplier),
		UnitPrice:  Some(price("19.99")),
	})
	want := map[string][2]*string{
		"height":      {nil, strPtr("2.25")},
		"supplier_id": {nil, strPtr(supplier.String())},
		"unit_price":  {strPtr("20"), strPtr("19.99")},
	}
	if len(diff.Changes) != len(want) {
		t.Fatalf("got %d changes, want %d", len(diff.Changes), len(want))
	}
	for _, c := range diff.Changes {
		w := want[c.Field]
		if !equalPtr(c.OldValue, w[0]) || !equalPtr(c.NewValue, w[1]) {
			t.Errorf("%s: %v -> %v, want %v -> %v", c.Field, deref(c.OldValue), deref(c.NewValue), deref(w[0]), deref(w[1]))
		}
	}

	diff.Apply(current)
	if current.Height == nil || *current.Height != 2.25 || current.SupplierID == nil || *current.SupplierID != supplier {
		t.Errorf("Apply left product %+v", current)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
