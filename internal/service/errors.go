package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrSalesOrderNotFound    = errors.New("sales order not found")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrInsufficientStock     = errors.New("insufficient stock remaining")
	ErrInvalidPatch          = errors.New("invalid product update")
)

// IsNotFound reports whether err is one of the not-found errors above
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrProductNotFound, ErrCategoryNotFound, ErrSupplierNotFound,
		ErrCustomerNotFound, ErrSalesOrderNotFound, ErrPurchaseOrderNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// notFound maps gorm.ErrRecordNotFound to sentinel and passes storage errors through
func notFound(err error, sentinel error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return err
}
