package service

import (
	"fmt"
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateSalesOrder(req *NewSalesOrder) (*model.SalesOrder, error)
	GetSalesOrder(id uuid.UUID) (*model.SalesOrder, error)
	GetSalesOrders(from, to *time.Time) ([]model.SalesOrder, error)

	CreatePurchaseOrder(req *NewPurchaseOrder) (*model.PurchaseOrder, error)
	ReceivePurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error)
	CancelPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error)
	GetPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error)
	GetPurchaseOrders(status *model.PurchaseStatus) ([]model.PurchaseOrder, error)
}

type SalesLine struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Width     *float64        `json:"width"`
	Height    *float64        `json:"height"`
	Notes     *string         `json:"notes"`
}

type NewSalesOrder struct {
	CustomerID *uuid.UUID  `json:"customer_id"`
	Notes      *string     `json:"notes"`
	Items      []SalesLine `json:"items" validate:"required,min=1,dive"`
}

type PurchaseLine struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     *string         `json:"notes"`
}

type NewPurchaseOrder struct {
	SupplierID *uuid.UUID     `json:"supplier_id"`
	Notes      *string        `json:"notes"`
	Items      []PurchaseLine `json:"items" validate:"required,min=1,dive"`
}

type orderService struct {
	orderRepo          repository.OrderRepository
	productRepo        repository.ProductRepository
	customerRepo       repository.CustomerRepository
	supplierRepo       repository.SupplierRepository
	stock              *StockService
	db                 *gorm.DB
	publisher          ws.Publisher
	log                *zap.Logger
	allowNegativeStock bool
}

func NewOrderService(
	oRepo repository.OrderRepository,
	pRepo repository.ProductRepository,
	hRepo repository.HistoryRepository,
	cRepo repository.CustomerRepository,
	sRepo repository.SupplierRepository,
	db *gorm.DB,
	publisher ws.Publisher,
	log *zap.Logger,
	allowNegativeStock bool,
) OrderService {
	return &orderService{
		orderRepo:          oRepo,
		productRepo:        pRepo,
		customerRepo:       cRepo,
		supplierRepo:       sRepo,
		stock:              NewStockService(pRepo, hRepo),
		db:                 db,
		publisher:          publisher,
		log:                log.Named("orders"),
		allowNegativeStock: allowNegativeStock,
	}
}

// CreateSalesOrder persists the order, one item and one sale movement per
// line, and the total, all in one transaction
func (s *orderService) CreateSalesOrder(req *NewSalesOrder) (*model.SalesOrder, error) {
	order := &model.SalesOrder{
		CustomerID:  req.CustomerID,
		Notes:       req.Notes,
		TotalAmount: decimal.Zero,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if order.CustomerID != nil {
			ok, err := s.customerRepo.Exists(tx, *order.CustomerID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrCustomerNotFound, *order.CustomerID)
			}
		}

		at := now()
		order.OrderDate = at
		if err := s.orderRepo.CreateSalesOrder(tx, order); err != nil {
			return err
		}

		total := decimal.Zero
		for i, line := range req.Items {
			product, err := s.productRepo.FindByIDForUpdate(tx, line.ProductID)
			if err != nil {
				return notFound(err, ErrProductNotFound, line.ProductID)
			}
			if !s.allowNegativeStock && product.Quantity < line.Quantity {
				return fmt.Errorf("%w: '%s' has %d, requested %d", ErrInsufficientStock, product.Name, product.Quantity, line.Quantity)
			}

			item := &model.SalesOrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Position:  i,
				Quantity:  line.Quantity,
				UnitPrice: model.RoundPrice(line.UnitPrice),
				Width:     line.Width,
				Height:    line.Height,
				Notes:     line.Notes,
			}
			if err := s.orderRepo.CreateSalesItem(tx, item); err != nil {
				return err
			}

			if _, err := s.stock.Adjust(tx, product, -line.Quantity, model.RefSale, &order.ID, nil, at); err != nil {
				return err
			}
			total = total.Add(item.LineTotal())
		}

		order.TotalAmount = total
		return s.orderRepo.SetSalesTotal(tx, order.ID, total)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.FindSalesOrder(order.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Sales order created",
		zap.String("order_id", created.ID.String()),
		zap.Int("items", len(created.Items)),
		zap.String("total", created.TotalAmount.StringFixed(2)))
	s.publisher.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  "sales_order_created",
		Message: fmt.Sprintf("Sales order with %d items recorded, total %s", len(created.Items), created.TotalAmount.StringFixed(2)),
		Data:    created,
	})
	return created, nil
}

func (s *orderService) GetSalesOrder(id uuid.UUID) (*model.SalesOrder, error) {
	order, err := s.orderRepo.FindSalesOrder(id)
	if err != nil {
		return nil, notFound(err, ErrSalesOrderNotFound, id)
	}
	return order, nil
}

// GetSalesOrders lists orders newest first, optionally bounded by order date
func (s *orderService) GetSalesOrders(from, to *time.Time) ([]model.SalesOrder, error) {
	return s.orderRepo.FindSalesOrders(from, to)
}

// CreatePurchaseOrder records a pending order; stock changes only on receipt
func (s *orderService) CreatePurchaseOrder(req *NewPurchaseOrder) (*model.PurchaseOrder, error) {
	order := &model.PurchaseOrder{
		SupplierID:  req.SupplierID,
		Notes:       req.Notes,
		Status:      model.PurchasePending,
		TotalAmount: decimal.Zero,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if order.SupplierID != nil {
			ok, err := s.supplierRepo.Exists(tx, *order.SupplierID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrSupplierNotFound, *order.SupplierID)
			}
		}

		order.OrderDate = now()
		if err := s.orderRepo.CreatePurchaseOrder(tx, order); err != nil {
			return err
		}

		total := decimal.Zero
		for i, line := range req.Items {
			ok, err := s.productRepo.Exists(tx, line.ProductID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}

			item := &model.PurchaseOrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Position:  i,
				Quantity:  line.Quantity,
				UnitPrice: model.RoundPrice(line.UnitPrice),
				Notes:     line.Notes,
			}
			if err := s.orderRepo.CreatePurchaseItem(tx, item); err != nil {
				return err
			}
			total = total.Add(item.LineTotal())
		}

		order.TotalAmount = total
		return s.orderRepo.SetPurchaseTotal(tx, order.ID, total)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.FindPurchaseOrder(order.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("Purchase order created",
		zap.String("order_id", created.ID.String()),
		zap.Int("items", len(created.Items)),
		zap.String("total", created.TotalAmount.StringFixed(2)))
	return created, nil
}

// ReceivePurchaseOrder moves a pending order to received and books its stock.
// Orders in any other state are returned unchanged.
func (s *orderService) ReceivePurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error) {
	received := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindPurchaseOrderForUpdate(tx, id)
		if err != nil {
			return notFound(err, ErrPurchaseOrderNotFound, id)
		}
		if order.Status != model.PurchasePending {
			return nil
		}

		at := now()
		for _, item := range order.Items {
			product, err := s.productRepo.FindByIDForUpdate(tx, item.ProductID)
			if err != nil {
				return notFound(err, ErrProductNotFound, item.ProductID)
			}
			if _, err := s.stock.Adjust(tx, product, item.Quantity, model.RefPurchase, &order.ID, nil, at); err != nil {
				return err
			}
		}

		order.Status = model.PurchaseReceived
		order.ReceivedAt = &at
		if err := s.orderRepo.UpdatePurchaseStatus(tx, order); err != nil {
			return err
		}
		received = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindPurchaseOrder(id)
	if err != nil {
		return nil, notFound(err, ErrPurchaseOrderNotFound, id)
	}

	if received {
		s.log.Info("Purchase order received", zap.String("order_id", id.String()), zap.Int("items", len(order.Items)))
		s.publisher.Publish(ws.Event{
			Type:    ws.TypeStockUpdate,
			Action:  "purchase_order_received",
			Message: fmt.Sprintf("Purchase order with %d items received", len(order.Items)),
			Data:    order,
		})
	} else {
		s.log.Debug("Purchase order not pending, receipt skipped", zap.String("order_id", id.String()), zap.String("status", string(order.Status)))
	}
	return order, nil
}

// CancelPurchaseOrder moves a pending order to cancelled without touching stock
func (s *orderService) CancelPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindPurchaseOrderForUpdate(tx, id)
		if err != nil {
			return notFound(err, ErrPurchaseOrderNotFound, id)
		}
		if order.Status != model.PurchasePending {
			return nil
		}
		order.Status = model.PurchaseCancelled
		return s.orderRepo.UpdatePurchaseStatus(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.GetPurchaseOrder(id)
}

func (s *orderService) GetPurchaseOrder(id uuid.UUID) (*model.PurchaseOrder, error) {
	order, err := s.orderRepo.FindPurchaseOrder(id)
	if err != nil {
		return nil, notFound(err, ErrPurchaseOrderNotFound, id)
	}
	return order, nil
}

func (s *orderService) GetPurchaseOrders(status *model.PurchaseStatus) ([]model.PurchaseOrder, error) {
	return s.orderRepo.FindPurchaseOrders(status)
}
