package repository

import (
	"time"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HistoryRepository stores the append-only ledger rows. There is
// no update method; rows are only removed together with their product.
type HistoryRepository interface {
	CreateEdits(tx *gorm.DB, edits []model.EditHistory) error
	CreatePriceChange(tx *gorm.DB, change *model.PriceHistory) error
	CreateStockMovement(tx *gorm.DB, movement *model.StockMovement) error

	EditHistory(productID uuid.UUID) ([]model.EditHistory, error)
	PriceHistory(productID uuid.UUID) ([]model.PriceHistory, error)
	StockMovements(filter MovementFilter) ([]model.StockMovement, error)
	SumStockMovements(productID uuid.UUID) (int, error)
	DeleteForProduct(tx *gorm.DB, productID uuid.UUID) error

	GetStockMovementChart(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

// MovementFilter narrows StockMovements; zero fields are ignored
type MovementFilter struct {
	ProductID *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// StockMovementData is one day of the dashboard chart
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db}
}

func (r *historyRepo) CreateEdits(tx *gorm.DB, edits []model.EditHistory) error {
	if len(edits) == 0 {
		return nil
	}
	return tx.Create(&edits).Error
}

func (r *historyRepo) CreatePriceChange(tx *gorm.DB, change *model.PriceHistory) error {
	return tx.Create(change).Error
}

func (r *historyRepo) CreateStockMovement(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *historyRepo) EditHistory(productID uuid.UUID) ([]model.EditHistory, error) {
	var rows []model.EditHistory
	err := r.db.Where("product_id = ?", productID).
		Order("changed_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *historyRepo) PriceHistory(productID uuid.UUID) ([]model.PriceHistory, error) {
	var rows []model.PriceHistory
	err := r.db.Where("product_id = ?", productID).
		Order("changed_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *historyRepo) StockMovements(filter MovementFilter) ([]model.StockMovement, error) {
	query := r.db.Model(&model.StockMovement{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.From != nil {
		query = query.Where(`"timestamp" >= ?`, *filter.From)
	}
	if filter.To != nil {
		query = query.Where(`"timestamp" <= ?`, *filter.To)
	}

	var rows []model.StockMovement
	err := query.Order(`"timestamp" DESC, id DESC`).Find(&rows).Error
	return rows, err
}

func (r *historyRepo) SumStockMovements(productID uuid.UUID) (int, error) {
	var total int
	err := r.db.Model(&model.StockMovement{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity_changed), 0)").
		Scan(&total).Error
	return total, err
}

// DeleteForProduct removes every ledger row owned by the product
func (r *historyRepo) DeleteForProduct(tx *gorm.DB, productID uuid.UUID) error {
	for _, m := range []interface{}{&model.EditHistory{}, &model.PriceHistory{}, &model.StockMovement{}} {
		if err := tx.Where("product_id = ?", productID).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *historyRepo) GetStockMovementChart(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE("timestamp") as date,
			COALESCE(SUM(CASE WHEN quantity_changed > 0 THEN quantity_changed ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN quantity_changed < 0 THEN -quantity_changed ELSE 0 END), 0) as outbound
		`).
		Where(`"timestamp" BETWEEN ? AND ?`, startDate, endDate).
		Group(`DATE("timestamp")`).
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *historyRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("quantity <= alert_threshold").Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	// summed in Go so the result keeps decimal precision on every driver
	var products []model.Product
	if err := r.db.Select("quantity", "unit_price").Find(&products).Error; err != nil {
		return nil, err
	}
	stats.TotalValuation = decimal.Zero
	for i := range products {
		stats.TotalValuation = stats.TotalValuation.Add(products[i].StockValue())
	}

	return &stats, nil
}
