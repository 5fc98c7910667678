package service

import (
	"go-inventory-ledger/internal/repository"
)

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetDashboardStats() (*repository.DashboardStats, error)
}

type dashboardService struct {
	historyRepo repository.HistoryRepository
}

func NewDashboardService(hRepo repository.HistoryRepository) DashboardService {
	return &dashboardService{historyRepo: hRepo}
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.historyRepo.GetStockMovementChart(startDate, endDate)
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.historyRepo.GetDashboardStats()
}
