package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
)

var (
	ErrEmptyCart       = errors.New("cannot checkout an empty cart")
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
)

type OrderService interface {
	// Checkout converts the cart into a persisted order for the given user,
	// capturing unit prices and decrementing stock. It either fully succeeds
	// or leaves nothing behind.
	Checkout(userID uuid.UUID, cart []model.CartLine) (*model.Order, error)
	Order(id uuid.UUID) (*model.Order, error)
	OrdersByUser(userID uuid.UUID) ([]model.Order, error)
	Orders() ([]model.Order, error)
}

func NewOrderService(
	repo model.OrderRepository,
	products model.ProductRepository,
	users model.UserRepository,
	dispatcher EventDispatcher,
) OrderService {
	return &orderService{
		repo:       repo,
		products:   products,
		users:      users,
		dispatcher: dispatcher,
	}
}

type orderService struct {
	repo       model.OrderRepository
	products   model.ProductRepository
	users      model.UserRepository
	dispatcher EventDispatcher
}

func (s *orderService) Checkout(userID uuid.UUID, cart []model.CartLine) (*model.Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range cart {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	user, err := s.users.Find(userID)
	if err != nil {
		return nil, err
	}

	orderID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:        orderID,
		UserID:    user.ID,
		Total:     decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}

	// Cart lines are processed in the order the client submitted them.
	for _, line := range cart {
		product, err := s.products.Find(line.ProductID)
		if err != nil {
			return nil, err
		}
		if line.Quantity > product.Stock {
			return nil, &model.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   line.Quantity,
			}
		}

		lineID, err := s.repo.NextID()
		if err != nil {
			return nil, err
		}

		unitPrice := product.Price
		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		order.Lines = append(order.Lines, model.OrderLine{
			ID:        lineID,
			OrderID:   orderID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		})
		order.Total = order.Total.Add(subtotal)
	}

	// The repository performs the stock decrements together with the order
	// insert in one transaction, re-checking availability so concurrent
	// checkouts can never drive stock negative.
	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:   orderID,
		UserID:    user.ID,
		Total:     order.Total,
		LineCount: len(order.Lines),
	})
	return order, nil
}

func (s *orderService) Order(id uuid.UUID) (*model.Order, error) {
	return s.repo.Find(id)
}

func (s *orderService) OrdersByUser(userID uuid.UUID) ([]model.Order, error) {
	return s.repo.FindByUser(userID)
}

func (s *orderService) Orders() ([]model.Order, error) {
	return s.repo.FindAll()
}
