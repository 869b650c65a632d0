package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
	"github.com/gastonprogram/e-commerce-backend/pkg/domain/service"
)

func price(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func TestCreateProduct(t *testing.T) {
	e := setup(t)
	owner := registerUser(t, e, "seller@example.com")
	category, _ := e.categories.CreateCategory("Books")
	e.dispatcher.Reset()

	product, err := e.products.CreateProduct(owner.Email, service.NewProduct{
		Name:        "Test Book",
		Description: "A book about testing",
		Price:       price(t, "19.99"),
		Stock:       100,
		Image:       "book.png",
		CategoryIDs: []uuid.UUID{category.ID},
	})

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, owner.ID, product.OwnerID)
	assert.Equal(t, 100, product.Stock)
	assert.True(t, product.Price.Equal(price(t, "19.99")))
	assert.Equal(t, []uuid.UUID{category.ID}, product.CategoryIDs)

	saved, err := e.productRepo.Find(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Book", saved.Name)

	require.Len(t, e.dispatcher.events, 1)
	_, ok := e.dispatcher.events[0].(model.ProductCreated)
	require.True(t, ok)
}

func TestCreateProductValidation(t *testing.T) {
	e := setup(t)
	owner := registerUser(t, e, "seller@example.com")

	t.Run("Fail on negative price", func(t *testing.T) {
		_, err := e.products.CreateProduct(owner.Email, service.NewProduct{
			Name: "Bad", Price: price(t, "-1.00"), Stock: 1,
		})
		assert.ErrorIs(t, err, service.ErrNegativePrice)
	})

	t.Run("Fail on negative stock", func(t *testing.T) {
		_, err := e.products.CreateProduct(owner.Email, service.NewProduct{
			Name: "Bad", Price: price(t, "1.00"), Stock: -1,
		})
		assert.ErrorIs(t, err, service.ErrNegativeStock)
	})

	t.Run("Fail on empty name", func(t *testing.T) {
		_, err := e.products.CreateProduct(owner.Email, service.NewProduct{
			Price: price(t, "1.00"), Stock: 1,
		})
		assert.ErrorIs(t, err, service.ErrProductNameRequired)
	})

	t.Run("Fail on unknown owner", func(t *testing.T) {
		_, err := e.products.CreateProduct("ghost@example.com", service.NewProduct{
			Name: "Ghost", Price: price(t, "1.00"), Stock: 1,
		})
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("Fail on unknown category", func(t *testing.T) {
		_, err := e.products.CreateProduct(owner.Email, service.NewProduct{
			Name: "Orphan", Price: price(t, "1.00"), Stock: 1,
			CategoryIDs: []uuid.UUID{newID(t)},
		})
		assert.ErrorIs(t, err, model.ErrCategoryNotFound)
		assert.Empty(t, e.productRepo.store)
	})
}

func TestUpdateProductPatchSemantics(t *testing.T) {
	e := setup(t)
	owner := registerUser(t, e, "seller@example.com")
	product, err := e.products.CreateProduct(owner.Email, service.NewProduct{
		Name:        "Lamp",
		Description: "Desk lamp",
		Price:       price(t, "30.00"),
		Stock:       5,
		Image:       "lamp.png",
	})
	require.NoError(t, err)

	newPrice := price(t, "27.50")
	updated, err := e.products.UpdateProduct(product.ID, service.ProductPatch{Price: &newPrice})

	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	// untouched fields keep their values
	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, "Desk lamp", updated.Description)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, "lamp.png", updated.Image)

	t.Run("Fail on negative price leaves product unchanged", func(t *testing.T) {
		bad := price(t, "-5.00")
		_, err := e.products.UpdateProduct(product.ID, service.ProductPatch{Price: &bad})
		assert.ErrorIs(t, err, service.ErrNegativePrice)

		saved, _ := e.productRepo.Find(product.ID)
		assert.True(t, saved.Price.Equal(newPrice))
	})

	t.Run("Fail on unknown product", func(t *testing.T) {
		_, err := e.products.UpdateProduct(newID(t), service.ProductPatch{})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestSetStock(t *testing.T) {
	e := setup(t)
	owner := registerUser(t, e, "seller@example.com")
	product, _ := e.products.CreateProduct(owner.Email, service.NewProduct{
		Name: "Mug", Price: price(t, "8.00"), Stock: 2,
	})

	updated, err := e.products.SetStock(product.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Stock)

	_, err = e.products.SetStock(product.ID, -1)
	assert.ErrorIs(t, err, service.ErrNegativeStock)
}

func TestAttachAndDetachCategory(t *testing.T) {
	e := setup(t)
	owner := registerUser(t, e, "seller@example.com")
	category, _ := e.categories.CreateCategory("Kitchen")
	product, _ := e.products.CreateProduct(owner.Email, service.NewProduct{
		Name: "Pan", Price: price(t, "15.00"), Stock: 7,
	})

	attached, err := e.products.AttachCategory(product.ID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{category.ID}, attached.CategoryIDs)

	// attaching again is a no-op
	attached, err = e.products.AttachCategory(product.ID, category.ID)
	require.NoError(t, err)
	assert.Len(t, attached.CategoryIDs, 1)

	inCategory, err := e.products.ProductsByCategory(category.ID)
	require.NoError(t, err)
	require.Len(t, inCategory, 1)

	detached, err := e.products.DetachCategory(product.ID, category.ID)
	require.NoError(t, err)
	assert.Empty(t, detached.CategoryIDs)

	_, err = e.products.AttachCategory(product.ID, newID(t))
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}

func TestDeleteProduct(t *testing.T) {
	e := setup(t)
	owner := registerUser(t, e, "seller@example.com")
	loose, _ := e.products.CreateProduct(owner.Email, service.NewProduct{
		Name: "Loose", Price: price(t, "5.00"), Stock: 1,
	})
	ordered, _ := e.products.CreateProduct(owner.Email, service.NewProduct{
		Name: "Ordered", Price: price(t, "5.00"), Stock: 5,
	})
	_, err := e.orders.Checkout(owner.ID, []model.CartLine{{ProductID: ordered.ID, Quantity: 1}})
	require.NoError(t, err)

	t.Run("Success when unreferenced", func(t *testing.T) {
		require.NoError(t, e.products.DeleteProduct(loose.ID))
		_, err := e.productRepo.Find(loose.ID)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Fail when referenced by an order line", func(t *testing.T) {
		err := e.products.DeleteProduct(ordered.ID)
		assert.ErrorIs(t, err, model.ErrProductInOrders)

		saved, err := e.productRepo.Find(ordered.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ordered", saved.Name)
	})
}

func TestCatalogQueries(t *testing.T) {
	e := setup(t)
	owner := registerUser(t, e, "seller@example.com")
	for _, name := range []string{"Zebra Mug", "apple crate", "Lamp"} {
		_, err := e.products.CreateProduct(owner.Email, service.NewProduct{
			Name: name, Price: price(t, "10.00"), Stock: 3,
		})
		require.NoError(t, err)
	}

	t.Run("Products are name-ascending", func(t *testing.T) {
		products, err := e.products.Products()
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "Lamp", products[0].Name)
		assert.Equal(t, "Zebra Mug", products[1].Name)
		assert.Equal(t, "apple crate", products[2].Name)
	})

	t.Run("Search is case-insensitive substring", func(t *testing.T) {
		products, err := e.products.SearchProducts("APPLE")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "apple crate", products[0].Name)
	})

	t.Run("Products by owner", func(t *testing.T) {
		products, err := e.products.ProductsByOwner(owner.ID)
		require.NoError(t, err)
		assert.Len(t, products, 3)

		none, err := e.products.ProductsByOwner(newID(t))
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestHasStock(t *testing.T) {
	e := setup(t)
	owner := registerUser(t, e, "seller@example.com")
	product, _ := e.products.CreateProduct(owner.Email, service.NewProduct{
		Name: "Chair", Price: price(t, "45.00"), Stock: 4,
	})

	ok, err := e.products.HasStock(product.ID, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.products.HasStock(product.ID, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = e.products.HasStock(newID(t), 1)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}
