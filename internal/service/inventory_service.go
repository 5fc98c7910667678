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

type InventoryService interface {
	CreateProduct(req *NewProduct) (*model.Product, error)
	UpdateProduct(id uuid.UUID, patch ProductPatch) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	SearchProducts(term string) ([]model.Product, error)
	GetLowStockProducts() ([]model.Product, error)

	GetEditHistory(productID uuid.UUID) ([]model.EditHistory, error)
	GetPriceHistory(productID uuid.UUID) ([]model.PriceHistory, error)
	GetStockMovements(productID uuid.UUID, from, to *time.Time) ([]model.StockMovement, error)
	GetAllStockMovements(from, to *time.Time) ([]model.StockMovement, error)

	Reconcile(productID uuid.UUID) (*Reconciliation, error)
	ReconcileAll() ([]Reconciliation, error)
}

// NewProduct is the input of CreateProduct. Only the type shape is enforced
// here; request validation happens at the edge.
type NewProduct struct {
	Name           string            `json:"name" validate:"required"`
	Quantity       int               `json:"quantity"`
	UnitPrice      decimal.Decimal   `json:"unit_price"`
	MeasureUnit    model.MeasureUnit `json:"measure_unit" validate:"omitempty,measure_unit"`
	CategoryID     *uuid.UUID        `json:"category_id"`
	SupplierID     *uuid.UUID        `json:"supplier_id"`
	Description    *string           `json:"description"`
	MaterialType   *string           `json:"material_type"`
	AlertThreshold *int              `json:"alert_threshold"`
	Width          *float64          `json:"width"`
	Height         *float64          `json:"height"`
}

// Reconciliation compares a product's quantity with its movement ledger
type Reconciliation struct {
	ProductID       uuid.UUID `json:"product_id"`
	Name            string    `json:"name"`
	InitialQuantity int       `json:"initial_quantity"`
	MovementSum     int       `json:"movement_sum"`
	Quantity        int       `json:"quantity"`
	Balanced        bool      `json:"balanced"`
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	historyRepo  repository.HistoryRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	tracker      *ChangeTracker
	db           *gorm.DB
	publisher    ws.Publisher
	log          *zap.Logger
}

func NewInventoryService(
	pRepo repository.ProductRepository,
	hRepo repository.HistoryRepository,
	cRepo repository.CategoryRepository,
	sRepo repository.SupplierRepository,
	db *gorm.DB,
	publisher ws.Publisher,
	log *zap.Logger,
) InventoryService {
	return &inventoryService{
		productRepo:  pRepo,
		historyRepo:  hRepo,
		categoryRepo: cRepo,
		supplierRepo: sRepo,
		tracker:      NewChangeTracker(hRepo),
		db:           db,
		publisher:    publisher,
		log:          log.Named("inventory"),
	}
}

func (s *inventoryService) CreateProduct(req *NewProduct) (*model.Product, error) {
	product := &model.Product{
		Name:            req.Name,
		Description:     req.Description,
		MaterialType:    req.MaterialType,
		Width:           req.Width,
		Height:          req.Height,
		Quantity:        req.Quantity,
		InitialQuantity: req.Quantity,
		UnitPrice:       model.RoundPrice(req.UnitPrice),
		AlertThreshold:  model.DefaultAlertThreshold,
		MeasureUnit:     req.MeasureUnit,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
	}
	if req.AlertThreshold != nil {
		product.AlertThreshold = *req.AlertThreshold
	}
	if product.MeasureUnit == "" {
		product.MeasureUnit = model.UnitPiece
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(tx, product.CategoryID, product.SupplierID); err != nil {
			return err
		}
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}
		return s.tracker.RecordCreation(tx, product.ID, now())
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	s.publisher.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  "product_created",
		Message: fmt.Sprintf("Product '%s' created", product.Name),
		Data:    product,
	})
	return product, nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, patch ProductPatch) (*model.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	var diff ProductDiff

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return notFound(err, ErrProductNotFound, id)
		}

		diff = DiffProduct(existing, patch)
		if diff.Empty() {
			return nil
		}

		if err := s.checkPatchReferences(tx, patch); err != nil {
			return err
		}
		if err := s.tracker.Record(tx, existing.ID, diff, now()); err != nil {
			return err
		}

		diff.Apply(existing)
		return s.productRepo.Save(tx, existing)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound, id)
	}

	if !diff.Empty() {
		fields := make([]string, 0, len(diff.Changes))
		for _, c := range diff.Changes {
			fields = append(fields, c.Field)
		}
		s.log.Info("Product updated", zap.String("product_id", id.String()), zap.Strings("fields", fields))
		s.publisher.Publish(ws.Event{
			Type:    ws.TypeStockUpdate,
			Action:  "product_updated",
			Message: fmt.Sprintf("Product '%s' updated", updated.Name),
			Data: map[string]interface{}{
				"product":        updated,
				"changed_fields": fields,
			},
		})
	}
	return updated, nil
}

// DeleteProduct removes the product together with its whole ledger
func (s *inventoryService) DeleteProduct(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.productRepo.FindByIDForUpdate(tx, id); err != nil {
			return notFound(err, ErrProductNotFound, id)
		}
		if err := s.historyRepo.DeleteForProduct(tx, id); err != nil {
			return err
		}
		return s.productRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("Product deleted", zap.String("product_id", id.String()))
	s.publisher.Publish(ws.Event{
		Type:   ws.TypeStockUpdate,
		Action: "product_deleted",
		Data:   map[string]interface{}{"id": id},
	})
	return nil
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound, id)
	}
	return product, nil
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) SearchProducts(term string) ([]model.Product, error) {
	return s.productRepo.Search(term)
}

// GetLowStockProducts is evaluated against current state on every call
func (s *inventoryService) GetLowStockProducts() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func (s *inventoryService) GetEditHistory(productID uuid.UUID) ([]model.EditHistory, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	return s.historyRepo.EditHistory(productID)
}

func (s *inventoryService) GetPriceHistory(productID uuid.UUID) ([]model.PriceHistory, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	return s.historyRepo.PriceHistory(productID)
}

func (s *inventoryService) GetStockMovements(productID uuid.UUID, from, to *time.Time) ([]model.StockMovement, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	return s.historyRepo.StockMovements(repository.MovementFilter{ProductID: &productID, From: from, To: to})
}

func (s *inventoryService) GetAllStockMovements(from, to *time.Time) ([]model.StockMovement, error) {
	return s.historyRepo.StockMovements(repository.MovementFilter{From: from, To: to})
}

func (s *inventoryService) Reconcile(productID uuid.UUID) (*Reconciliation, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound, productID)
	}
	return s.reconcile(product)
}

func (s *inventoryService) ReconcileAll() ([]Reconciliation, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	results := make([]Reconciliation, 0, len(products))
	for i := range products {
		rec, err := s.reconcile(&products[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}
	return results, nil
}

func (s *inventoryService) reconcile(product *model.Product) (*Reconciliation, error) {
	sum, err := s.historyRepo.SumStockMovements(product.ID)
	if err != nil {
		return nil, err
	}
	return &Reconciliation{
		ProductID:       product.ID,
		Name:            product.Name,
		InitialQuantity: product.InitialQuantity,
		MovementSum:     sum,
		Quantity:        product.Quantity,
		Balanced:        product.InitialQuantity+sum == product.Quantity,
	}, nil
}

func (s *inventoryService) requireProduct(id uuid.UUID) error {
	ok, err := s.productRepo.Exists(s.db, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return nil
}

func (s *inventoryService) checkPatchReferences(tx *gorm.DB, patch ProductPatch) error {
	var categoryID, supplierID *uuid.UUID
	if patch.CategoryID.Set {
		categoryID = patch.CategoryID.Value
	}
	if patch.SupplierID.Set {
		supplierID = patch.SupplierID.Value
	}
	return s.checkReferences(tx, categoryID, supplierID)
}

// checkReferences verifies optional category and supplier ids inside tx
func (s *inventoryService) checkReferences(tx *gorm.DB, categoryID, supplierID *uuid.UUID) error {
	if categoryID != nil {
		ok, err := s.categoryRepo.Exists(tx, *categoryID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrCategoryNotFound, *categoryID)
		}
	}
	if supplierID != nil {
		ok, err := s.supplierRepo.Exists(tx, *supplierID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrSupplierNotFound, *supplierID)
		}
	}
	return nil
}
