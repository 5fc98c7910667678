package service

import (
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the only path that changes quantity as a side effect of
// sales or receiving. It applies the delta as given; floors are the caller's concern.
type StockService struct {
	productRepo repository.ProductRepository
	historyRepo repository.HistoryRepository
}

func NewStockService(pRepo repository.ProductRepository, hRepo repository.HistoryRepository) *StockService {
	return &StockService{productRepo: pRepo, historyRepo: hRepo}
}

// Adjust adds delta to product.Quantity and appends the matching movement.
// product must have been loaded through tx.
func (s *StockService) Adjust(tx *gorm.DB, product *model.Product, delta int, ref model.ReferenceType, refID *uuid.UUID, notes *string, at time.Time) (*model.StockMovement, error) {
	newQuantity := product.Quantity + delta
	if err := s.productRepo.UpdateStock(tx, product.ID, newQuantity); err != nil {
		return nil, err
	}

	movement := &model.StockMovement{
		ProductID:       product.ID,
		QuantityChanged: delta,
		ReferenceType:   ref,
		ReferenceID:     refID,
		Notes:           notes,
		Timestamp:       at,
	}
	if err := s.historyRepo.CreateStockMovement(tx, movement); err != nil {
		return nil, err
	}

	product.Quantity = newQuantity
	return movement, nil
}
