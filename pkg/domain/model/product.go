package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductInOrders   = errors.New("product is referenced by existing orders")
	ErrInsufficientStock = errors.New("insufficient stock quantity")
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Image       string
	OwnerID     uuid.UUID
	CategoryIDs []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InsufficientStockError carries the availability snapshot that made a
// checkout line fail. It unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: %d available, %d requested",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(product *Product) error
	// Update overwrites all product fields and rewrites the category links.
	Update(product *Product) error
	Find(id uuid.UUID) (*Product, error)
	FindAll() ([]Product, error)
	FindByCategory(categoryID uuid.UUID) ([]Product, error)
	SearchByName(name string) ([]Product, error)
	FindByOwner(ownerID uuid.UUID) ([]Product, error)
	Delete(id uuid.UUID) error
}
