package model

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category name is already taken")
	ErrCategoryInUse     = errors.New("category is referenced by existing products")
)

type Category struct {
	ID   uuid.UUID
	Name string
}

// CategoryRepository stores categories. Products belonging to a category
// are never stored on the category itself; they are recomputed by query
// through ProductRepository.FindByCategory.
type CategoryRepository interface {
	NextID() (uuid.UUID, error)
	Create(category *Category) error
	Update(category *Category) error
	Find(id uuid.UUID) (*Category, error)
	FindAll() ([]Category, error)
	ExistsByName(name string) (bool, error)
	Delete(id uuid.UUID) error
}
