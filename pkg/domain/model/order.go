package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

// CartLine is a (product, quantity) pair submitted for checkout.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Total     decimal.Decimal
	Lines     []OrderLine
	CreatedAt time.Time
}

type OrderLine struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	// UnitPrice is the product price captured at order time. It never
	// changes when the catalog price does.
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	// Create persists the order with all its lines and decrements the stock
	// of every referenced product, all inside a single transaction. When a
	// decrement would take stock below zero nothing is persisted and the
	// error unwraps to ErrInsufficientStock.
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	FindByUser(userID uuid.UUID) ([]Order, error)
	FindAll() ([]Order, error)
	HasLinesForProduct(productID uuid.UUID) (bool, error)
}
