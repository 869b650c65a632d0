package mysql

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
)

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) model.CategoryRepository {
	return &categoryRepository{db: db}
}

type categoryRow struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

func (r *categoryRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *categoryRepository) Create(category *model.Category) error {
	_, err := r.db.Exec(`INSERT INTO categories (id, name) VALUES (?, ?)`,
		category.ID, category.Name)
	if isDuplicateEntry(err) {
		return model.ErrCategoryNameTaken
	}
	return errors.Wrap(err, "insert category")
}

func (r *categoryRepository) Update(category *model.Category) error {
	res, err := r.db.Exec(`UPDATE categories SET name = ? WHERE id = ?`,
		category.Name, category.ID)
	if isDuplicateEntry(err) {
		return model.ErrCategoryNameTaken
	}
	if err != nil {
		return errors.Wrap(err, "update category")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	var row categoryRow
	err := r.db.Get(&row, `SELECT id, name FROM categories WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select category")
	}
	return &model.Category{ID: row.ID, Name: row.Name}, nil
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	var rows []categoryRow
	if err := r.db.Select(&rows, `SELECT id, name FROM categories ORDER BY name ASC`); err != nil {
		return nil, errors.Wrap(err, "select categories")
	}

	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, model.Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}

func (r *categoryRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM categories WHERE name = ?)`, name)
	return exists, errors.Wrap(err, "check category name")
}

func (r *categoryRepository) Delete(id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}
