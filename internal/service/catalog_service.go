package service

import (
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"github.com/google/uuid"
)

// CatalogService manages the reference entities. Each call is its own unit of work.
type CatalogService interface {
	CreateCategory(c *model.Category) error
	GetCategories() ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *model.Category) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error

	CreateSupplier(s *model.Supplier) error
	GetSuppliers() ([]model.Supplier, error)
	GetSupplier(id uuid.UUID) (*model.Supplier, error)
	UpdateSupplier(id uuid.UUID, req *model.Supplier) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error

	CreateCustomer(c *model.Customer) error
	GetCustomers() ([]model.Customer, error)
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	UpdateCustomer(id uuid.UUID, req *model.Customer) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
}

func NewCatalogService(cRepo repository.CategoryRepository, sRepo repository.SupplierRepository, custRepo repository.CustomerRepository) CatalogService {
	return &catalogService{
		categoryRepo: cRepo,
		supplierRepo: sRepo,
		customerRepo: custRepo,
	}
}

func (s *catalogService) CreateCategory(c *model.Category) error {
	return s.categoryRepo.Create(c)
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) GetCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound, id)
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category) (*model.Category, error) {
	existing, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	existing.Description = req.Description
	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) CreateSupplier(sup *model.Supplier) error {
	return s.supplierRepo.Create(sup)
}

func (s *catalogService) GetSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *catalogService) GetSupplier(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound, id)
	}
	return supplier, nil
}

func (s *catalogService) UpdateSupplier(id uuid.UUID, req *model.Supplier) (*model.Supplier, error) {
	existing, err := s.GetSupplier(id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	existing.ContactPerson = req.ContactPerson
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Address = req.Address
	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteSupplier(id uuid.UUID) error {
	if _, err := s.GetSupplier(id); err != nil {
		return err
	}
	return s.supplierRepo.Delete(id)
}

func (s *catalogService) CreateCustomer(c *model.Customer) error {
	return s.customerRepo.Create(c)
}

func (s *catalogService) GetCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *catalogService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrCustomerNotFound, id)
	}
	return customer, nil
}

func (s *catalogService) UpdateCustomer(id uuid.UUID, req *model.Customer) (*model.Customer, error) {
	existing, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}
	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.CompanyName = req.CompanyName
	existing.RegistrationNumber = req.RegistrationNumber
	existing.TradeRegisterNumber = req.TradeRegisterNumber
	existing.BankAccount = req.BankAccount
	existing.BankName = req.BankName
	if err := s.customerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.GetCustomer(id); err != nil {
		return err
	}
	return s.customerRepo.Delete(id)
}
