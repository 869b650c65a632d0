package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
)

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) model.ProductRepository {
	return &productRepository{db: db}
}

type productRow struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	Image       string          `db:"image"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r productRow) toModel() model.Product {
	return model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Image:       r.Image,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const selectProduct = `SELECT id, name, description, price, stock, image, owner_id, created_at, updated_at FROM products`

func (r *productRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *productRepository) Create(product *model.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO products (id, name, description, price, stock, image, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.Image, product.OwnerID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "insert product")
	}

	if err := insertCategoryLinks(tx, product.ID, product.CategoryIDs); err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "commit transaction")
}

func (r *productRepository) Update(product *model.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE products SET name = ?, description = ?, price = ?, stock = ?, image = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name, product.Description, product.Price, product.Stock,
		product.Image, product.UpdatedAt, product.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrProductNotFound
	}

	if _, err := tx.Exec(`DELETE FROM product_categories WHERE product_id = ?`, product.ID); err != nil {
		return errors.Wrap(err, "clear category links")
	}
	if err := insertCategoryLinks(tx, product.ID, product.CategoryIDs); err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(), "commit transaction")
}

func (r *productRepository) Find(id uuid.UUID) (*model.Product, error) {
	var row productRow
	err := r.db.Get(&row, selectProduct+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select product")
	}

	product := row.toModel()
	if product.CategoryIDs, err = r.categoryIDs(id); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.selectMany(selectProduct + ` ORDER BY name ASC`)
}

func (r *productRepository) FindByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	return r.selectMany(
		selectProduct+` WHERE id IN (SELECT product_id FROM product_categories WHERE category_id = ?) ORDER BY name ASC`,
		categoryID,
	)
}

func (r *productRepository) SearchByName(name string) ([]model.Product, error) {
	return r.selectMany(
		selectProduct+` WHERE LOWER(name) LIKE CONCAT('%', LOWER(?), '%') ORDER BY name ASC`,
		name,
	)
}

func (r *productRepository) FindByOwner(ownerID uuid.UUID) ([]model.Product, error) {
	return r.selectMany(selectProduct+` WHERE owner_id = ? ORDER BY name ASC`, ownerID)
}

func (r *productRepository) Delete(id uuid.UUID) error {
	// product_categories rows go away through ON DELETE CASCADE
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) selectMany(query string, args ...interface{}) ([]model.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select products")
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		product := row.toModel()
		categoryIDs, err := r.categoryIDs(product.ID)
		if err != nil {
			return nil, err
		}
		product.CategoryIDs = categoryIDs
		products = append(products, product)
	}
	return products, nil
}

func (r *productRepository) categoryIDs(productID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Select(&ids,
		`SELECT category_id FROM product_categories WHERE product_id = ?`, productID)
	return ids, errors.Wrap(err, "select category links")
}

func insertCategoryLinks(tx *sqlx.Tx, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	for _, categoryID := range categoryIDs {
		_, err := tx.Exec(
			`INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)`,
			productID, categoryID,
		)
		if err != nil {
			return errors.Wrap(err, "insert category link")
		}
	}
	return nil
}
