package service

import (
	"context"
	"fmt"
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/ws"

	"go.uber.org/zap"
)

// LowStockMonitor periodically surfaces products at or below their threshold.
// It only reads.
type LowStockMonitor struct {
	inventory InventoryService
	publisher ws.Publisher
	log       *zap.Logger
	interval  time.Duration
}

func NewLowStockMonitor(inventory InventoryService, publisher ws.Publisher, log *zap.Logger, interval time.Duration) *LowStockMonitor {
	return &LowStockMonitor{
		inventory: inventory,
		publisher: publisher,
		log:       log.Named("low_stock"),
		interval:  interval,
	}
}

// Run checks once immediately and then on every tick until ctx is done
func (m *LowStockMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check()
		}
	}
}

// Check evaluates the low-stock set and publishes it when non-empty
func (m *LowStockMonitor) Check() []model.Product {
	products, err := m.inventory.GetLowStockProducts()
	if err != nil {
		m.log.Error("Low stock check failed", zap.Error(err))
		return nil
	}
	if len(products) == 0 {
		return nil
	}

	m.log.Warn("Products at or below alert threshold", zap.Int("count", len(products)))

	type alert struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		Quantity       int    `json:"quantity"`
		AlertThreshold int    `json:"alert_threshold"`
		MeasureUnit    string `json:"measure_unit"`
	}
	alerts := make([]alert, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, alert{
			ID:             p.ID.String(),
			Name:           p.Name,
			Quantity:       p.Quantity,
			AlertThreshold: p.AlertThreshold,
			MeasureUnit:    p.MeasureUnit.Label(),
		})
	}
	m.publisher.Publish(ws.Event{
		Type:    ws.TypeLowStock,
		Action:  "low_stock_detected",
		Message: fmt.Sprintf("%d products are low on stock", len(products)),
		Data:    alerts,
	})
	return products
}
