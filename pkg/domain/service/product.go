package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
)

var (
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrNegativeStock       = errors.New("stock cannot be negative")
	ErrProductNameRequired = errors.New("product name must not be empty")
)

// NewProduct holds the fields of a product to publish.
type NewProduct struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Image       string
	CategoryIDs []uuid.UUID
}

// ProductPatch carries a partial update. Nil fields leave the current
// value untouched; CategoryIDs replaces the whole set when non-empty.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Image       *string
	CategoryIDs []uuid.UUID
}

type ProductService interface {
	Products() ([]model.Product, error)
	Product(id uuid.UUID) (*model.Product, error)
	ProductsByCategory(categoryID uuid.UUID) ([]model.Product, error)
	SearchProducts(name string) ([]model.Product, error)
	ProductsByOwner(ownerID uuid.UUID) ([]model.Product, error)
	HasStock(productID uuid.UUID, quantity int) (bool, error)

	CreateProduct(ownerEmail string, p NewProduct) (*model.Product, error)
	UpdateProduct(id uuid.UUID, patch ProductPatch) (*model.Product, error)
	SetStock(id uuid.UUID, stock int) (*model.Product, error)
	AttachCategory(productID, categoryID uuid.UUID) (*model.Product, error)
	DetachCategory(productID, categoryID uuid.UUID) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
}

func NewProductService(
	repo model.ProductRepository,
	categories model.CategoryRepository,
	users model.UserRepository,
	orders model.OrderRepository,
	dispatcher EventDispatcher,
) ProductService {
	return &productService{
		repo:       repo,
		categories: categories,
		users:      users,
		orders:     orders,
		dispatcher: dispatcher,
	}
}

type productService struct {
	repo       model.ProductRepository
	categories model.CategoryRepository
	users      model.UserRepository
	orders     model.OrderRepository
	dispatcher EventDispatcher
}

func (s *productService) Products() ([]model.Product, error) {
	return s.repo.FindAll()
}

func (s *productService) Product(id uuid.UUID) (*model.Product, error) {
	return s.repo.Find(id)
}

func (s *productService) ProductsByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	return s.repo.FindByCategory(categoryID)
}

func (s *productService) SearchProducts(name string) ([]model.Product, error) {
	return s.repo.SearchByName(name)
}

func (s *productService) ProductsByOwner(ownerID uuid.UUID) ([]model.Product, error) {
	return s.repo.FindByOwner(ownerID)
}

func (s *productService) HasStock(productID uuid.UUID, quantity int) (bool, error) {
	product, err := s.repo.Find(productID)
	if err != nil {
		return false, err
	}
	return product.Stock >= quantity, nil
}

func (s *productService) CreateProduct(ownerEmail string, p NewProduct) (*model.Product, error) {
	if p.Name == "" {
		return nil, ErrProductNameRequired
	}
	if p.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if p.Stock < 0 {
		return nil, ErrNegativeStock
	}

	owner, err := s.users.FindByEmail(ownerEmail)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategoriesExist(p.CategoryIDs); err != nil {
		return nil, err
	}

	productID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          productID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		OwnerID:     owner.ID,
		CategoryIDs: p.CategoryIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: productID, OwnerID: owner.ID, Name: p.Name})
	return product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, patch ProductPatch) (*model.Product, error) {
	product, err := s.repo.Find(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, ErrNegativeStock
		}
		product.Stock = *patch.Stock
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if len(patch.CategoryIDs) > 0 {
		if err := s.checkCategoriesExist(patch.CategoryIDs); err != nil {
			return nil, err
		}
		product.CategoryIDs = patch.CategoryIDs
	}

	if err := s.updateProduct(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: id})
	return product, nil
}

func (s *productService) SetStock(id uuid.UUID, stock int) (*model.Product, error) {
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	product, err := s.repo.Find(id)
	if err != nil {
		return nil, err
	}

	product.Stock = stock
	if err := s.updateProduct(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductStockChanged{ProductID: id, NewQuantity: stock})
	return product, nil
}

func (s *productService) AttachCategory(productID, categoryID uuid.UUID) (*model.Product, error) {
	product, err := s.repo.Find(productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.Find(categoryID); err != nil {
		return nil, err
	}

	for _, id := range product.CategoryIDs {
		if id == categoryID {
			return product, nil
		}
	}

	product.CategoryIDs = append(product.CategoryIDs, categoryID)
	if err := s.updateProduct(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: productID})
	return product, nil
}

func (s *productService) DetachCategory(productID, categoryID uuid.UUID) (*model.Product, error) {
	product, err := s.repo.Find(productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.Find(categoryID); err != nil {
		return nil, err
	}

	kept := product.CategoryIDs[:0]
	for _, id := range product.CategoryIDs {
		if id != categoryID {
			kept = append(kept, id)
		}
	}
	product.CategoryIDs = kept

	if err := s.updateProduct(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: productID})
	return product, nil
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.repo.Find(id); err != nil {
		return err
	}

	referenced, err := s.orders.HasLinesForProduct(id)
	if err != nil {
		return err
	}
	if referenced {
		return model.ErrProductInOrders
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductDeleted{ProductID: id})
	return nil
}

func (s *productService) checkCategoriesExist(categoryIDs []uuid.UUID) error {
	for _, categoryID := range categoryIDs {
		if _, err := s.categories.Find(categoryID); err != nil {
			return err
		}
	}
	return nil
}

func (s *productService) updateProduct(product *model.Product) error {
	product.UpdatedAt = time.Now().UTC()
	return s.repo.Update(product)
}
