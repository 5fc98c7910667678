package service

import (
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const manualAdjustmentNote = "Manual adjustment"

// ChangeTracker turns a ProductDiff into ledger rows. It never touches the
// product itself; the caller commits the new values.
type ChangeTracker struct {
	historyRepo repository.HistoryRepository
}

func NewChangeTracker(hRepo repository.HistoryRepository) *ChangeTracker {
	return &ChangeTracker{historyRepo: hRepo}
}

// Record writes one edit row per change, a price row when the price changed
// and an adjustment movement when the quantity changed
func (t *ChangeTracker) Record(tx *gorm.DB, productID uuid.UUID, diff ProductDiff, at time.Time) error {
	if diff.Empty() {
		return nil
	}

	edits := make([]model.EditHistory, 0, len(diff.Changes))
	for _, c := range diff.Changes {
		edits = append(edits, model.EditHistory{
			ProductID: productID,
			FieldName: c.Field,
			OldValue:  c.OldValue,
			NewValue:  c.NewValue,
			ChangedAt: at,
		})
	}
	if err := t.historyRepo.CreateEdits(tx, edits); err != nil {
		return err
	}

	if diff.Price != nil {
		if err := t.historyRepo.CreatePriceChange(tx, &model.PriceHistory{
			ProductID: productID,
			OldPrice:  diff.Price.OldPrice,
			NewPrice:  diff.Price.NewPrice,
			ChangedAt: at,
		}); err != nil {
			return err
		}
	}

	if diff.QuantityDelta != 0 {
		note := manualAdjustmentNote
		if err := t.historyRepo.CreateStockMovement(tx, &model.StockMovement{
			ProductID:       productID,
			QuantityChanged: diff.QuantityDelta,
			ReferenceType:   model.RefAdjustment,
			Notes:           &note,
			Timestamp:       at,
		}); err != nil {
			return err
		}
	}

	return nil
}

// RecordCreation writes the synthetic row every product starts its history with
func (t *ChangeTracker) RecordCreation(tx *gorm.DB, productID uuid.UUID, at time.Time) error {
	created := "Product created"
	return t.historyRepo.CreateEdits(tx, []model.EditHistory{{
		ProductID: productID,
		FieldName: model.CreationField,
		NewValue:  &created,
		ChangedAt: at,
	}})
}
