package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserRegistered struct {
	UserID uuid.UUID
	Email  string
}

func (e UserRegistered) Type() string { return "UserRegistered" }

type ProductCreated struct {
	ProductID uuid.UUID
	OwnerID   uuid.UUID
	Name      string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductUpdated struct {
	ProductID uuid.UUID
}

func (e ProductUpdated) Type() string { return "ProductUpdated" }

type ProductStockChanged struct {
	ProductID   uuid.UUID
	NewQuantity int
}

func (e ProductStockChanged) Type() string { return "ProductStockChanged" }

type ProductDeleted struct {
	ProductID uuid.UUID
}

func (e ProductDeleted) Type() string { return "ProductDeleted" }

type CategoryCreated struct {
	CategoryID uuid.UUID
	Name       string
}

func (e CategoryCreated) Type() string { return "CategoryCreated" }

type CategoryRenamed struct {
	CategoryID uuid.UUID
	OldName    string
	NewName    string
}

func (e CategoryRenamed) Type() string { return "CategoryRenamed" }

type CategoryDeleted struct {
	CategoryID uuid.UUID
}

func (e CategoryDeleted) Type() string { return "CategoryDeleted" }

type OrderPlaced struct {
	OrderID   uuid.UUID
	UserID    uuid.UUID
	Total     decimal.Decimal
	LineCount int
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }
