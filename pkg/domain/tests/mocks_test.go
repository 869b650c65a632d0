package tests

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
	"github.com/gastonprogram/e-commerce-backend/pkg/domain/service"
)

type env struct {
	users      service.UserService
	products   service.ProductService
	categories service.CategoryService
	orders     service.OrderService

	userRepo     *mockUserRepository
	productRepo  *mockProductRepository
	categoryRepo *mockCategoryRepository
	orderRepo    *mockOrderRepository
	dispatcher   *mockEventDispatcher
}

func setup(t *testing.T) *env {
	t.Helper()

	userRepo := &mockUserRepository{store: make(map[uuid.UUID]*model.User)}
	productRepo := &mockProductRepository{store: make(map[uuid.UUID]*model.Product)}
	categoryRepo := &mockCategoryRepository{store: make(map[uuid.UUID]*model.Category)}
	orderRepo := &mockOrderRepository{
		store:    make(map[uuid.UUID]*model.Order),
		products: productRepo,
	}
	dispatcher := &mockEventDispatcher{}

	return &env{
		users:        service.NewUserService(userRepo, &mockPasswordManager{}, dispatcher),
		products:     service.NewProductService(productRepo, categoryRepo, userRepo, orderRepo, dispatcher),
		categories:   service.NewCategoryService(categoryRepo, productRepo, dispatcher),
		orders:       service.NewOrderService(orderRepo, productRepo, userRepo, dispatcher),
		userRepo:     userRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		dispatcher:   dispatcher,
	}
}

func registerUser(t *testing.T, e *env, email string) *model.User {
	t.Helper()
	user, err := e.users.Register("Test", "User", email, "s3cret-pass")
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	e.dispatcher.Reset()
	return user
}

func newID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

type mockUserRepository struct {
	store map[uuid.UUID]*model.User
}

func (m *mockUserRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockUserRepository) Create(u *model.User) error {
	for _, existing := range m.store {
		if existing.Email == u.Email {
			return model.ErrEmailTaken
		}
	}
	clone := *u
	m.store[u.ID] = &clone
	return nil
}

func (m *mockUserRepository) Find(id uuid.UUID) (*model.User, error) {
	if u, ok := m.store[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(email string) (*model.User, error) {
	for _, u := range m.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

type mockProductRepository struct {
	store map[uuid.UUID]*model.Product
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockProductRepository) Create(p *model.Product) error {
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProductRepository) Update(p *model.Product) error {
	if _, ok := m.store[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	if p, ok := m.store[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}

func (m *mockProductRepository) FindAll() ([]model.Product, error) {
	return m.sorted(func(*model.Product) bool { return true }), nil
}

func (m *mockProductRepository) FindByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	return m.sorted(func(p *model.Product) bool {
		for _, id := range p.CategoryIDs {
			if id == categoryID {
				return true
			}
		}
		return false
	}), nil
}

func (m *mockProductRepository) SearchByName(name string) ([]model.Product, error) {
	needle := strings.ToLower(name)
	return m.sorted(func(p *model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

func (m *mockProductRepository) FindByOwner(ownerID uuid.UUID) ([]model.Product, error) {
	return m.sorted(func(p *model.Product) bool { return p.OwnerID == ownerID }), nil
}

func (m *mockProductRepository) Delete(id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockProductRepository) sorted(keep func(*model.Product) bool) []model.Product {
	products := make([]model.Product, 0, len(m.store))
	for _, p := range m.store {
		if keep(p) {
			products = append(products, *p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products
}

type mockCategoryRepository struct {
	store map[uuid.UUID]*model.Category
}

func (m *mockCategoryRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockCategoryRepository) Create(c *model.Category) error {
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *mockCategoryRepository) Update(c *model.Category) error {
	if _, ok := m.store[c.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	clone := *c
	m.store[c.ID] = &clone
	return nil
}

func (m *mockCategoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	if c, ok := m.store[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, model.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindAll() ([]model.Category, error) {
	categories := make([]model.Category, 0, len(m.store))
	for _, c := range m.store {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *mockCategoryRepository) ExistsByName(name string) (bool, error) {
	for _, c := range m.store {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCategoryRepository) Delete(id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(m.store, id)
	return nil
}

// mockOrderRepository mimics the transactional contract of the real
// repository: the order and every stock decrement land together or not at
// all.
type mockOrderRepository struct {
	store    map[uuid.UUID]*model.Order
	products *mockProductRepository
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }

func (m *mockOrderRepository) Create(order *model.Order) error {
	for _, line := range order.Lines {
		product, ok := m.products.store[line.ProductID]
		if !ok {
			return model.ErrProductNotFound
		}
		if product.Stock < line.Quantity {
			return &model.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   line.Quantity,
			}
		}
	}
	for _, line := range order.Lines {
		m.products.store[line.ProductID].Stock -= line.Quantity
	}

	clone := *order
	clone.Lines = append([]model.OrderLine(nil), order.Lines...)
	m.store[order.ID] = &clone
	return nil
}

func (m *mockOrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	if o, ok := m.store[id]; ok {
		clone := *o
		clone.Lines = append([]model.OrderLine(nil), o.Lines...)
		return &clone, nil
	}
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepository) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	for _, o := range m.store {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (m *mockOrderRepository) FindAll() ([]model.Order, error) {
	orders := make([]model.Order, 0, len(m.store))
	for _, o := range m.store {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (m *mockOrderRepository) HasLinesForProduct(productID uuid.UUID) (bool, error) {
	for _, o := range m.store {
		for _, line := range o.Lines {
			if line.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}

type mockPasswordManager struct{}

func (m *mockPasswordManager) Hash(plainTextPassword string) (string, error) {
	return "hashed:" + plainTextPassword, nil
}

func (m *mockPasswordManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	return hashedPassword == "hashed:"+plainTextPassword, nil
}
