package repository

import (
	"time"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	CreateSalesOrder(tx *gorm.DB, order *model.SalesOrder) error
	CreateSalesItem(tx *gorm.DB, item *model.SalesOrderItem) error
	SetSalesTotal(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error
	FindSalesOrder(id uuid.UUID) (*model.SalesOrder, error)
	FindSalesOrders(from, to *time.Time) ([]model.SalesOrder, error)

	CreatePurchaseOrder(tx *gorm.DB, order *model.PurchaseOrder) error
	CreatePurchaseItem(tx *gorm.DB, item *model.PurchaseOrderItem) error
	SetPurchaseTotal(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error
	FindPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error)
	FindPurchaseOrderForUpdate(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error)
	FindPurchaseOrders(status *model.PurchaseStatus) ([]model.PurchaseOrder, error)
	UpdatePurchaseStatus(tx *gorm.DB, order *model.PurchaseOrder) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func itemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *orderRepo) CreateSalesOrder(tx *gorm.DB, order *model.SalesOrder) error {
	return tx.Omit(clause.Associations).Create(order).Error
}

func (r *orderRepo) CreateSalesItem(tx *gorm.DB, item *model.SalesOrderItem) error {
	return tx.Create(item).Error
}

func (r *orderRepo) SetSalesTotal(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.SalesOrder{}).Where("id = ?", id).Update("total_amount", total).Error
}

func (r *orderRepo) FindSalesOrder(id uuid.UUID) (*model.SalesOrder, error) {
	var order model.SalesOrder
	if err := r.db.Preload("Items", itemsByPosition).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindSalesOrders returns orders dated within [from, to]; nil bounds are open
func (r *orderRepo) FindSalesOrders(from, to *time.Time) ([]model.SalesOrder, error) {
	query := r.db.Preload("Items", itemsByPosition)
	if from != nil {
		query = query.Where("order_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("order_date <= ?", *to)
	}
	var orders []model.SalesOrder
	err := query.Order("order_date DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) CreatePurchaseOrder(tx *gorm.DB, order *model.PurchaseOrder) error {
	return tx.Omit(clause.Associations).Create(order).Error
}

func (r *orderRepo) CreatePurchaseItem(tx *gorm.DB, item *model.PurchaseOrderItem) error {
	return tx.Create(item).Error
}

func (r *orderRepo) SetPurchaseTotal(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.PurchaseOrder{}).Where("id = ?", id).Update("total_amount", total).Error
}

func (r *orderRepo) FindPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := r.db.Preload("Items", itemsByPosition).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindPurchaseOrderForUpdate locks the order header, items are loaded through tx
func (r *orderRepo) FindPurchaseOrderForUpdate(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("order_id = ?", order.ID).Order("position ASC").Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindPurchaseOrders(status *model.PurchaseStatus) ([]model.PurchaseOrder, error) {
	query := r.db.Preload("Items", itemsByPosition)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var orders []model.PurchaseOrder
	err := query.Order("order_date DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdatePurchaseStatus(tx *gorm.DB, order *model.PurchaseOrder) error {
	return tx.Model(&model.PurchaseOrder{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":      order.Status,
			"received_at": order.ReceivedAt,
		}).Error
}
