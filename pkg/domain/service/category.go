package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
)

var ErrCategoryNameRequired = errors.New("category name must not be empty")

type CategoryService interface {
	Categories() ([]model.Category, error)
	Category(id uuid.UUID) (*model.Category, error)
	CreateCategory(name string) (*model.Category, error)
	RenameCategory(id uuid.UUID, name string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
}

func NewCategoryService(repo model.CategoryRepository, products model.ProductRepository, dispatcher EventDispatcher) CategoryService {
	return &categoryService{repo: repo, products: products, dispatcher: dispatcher}
}

type categoryService struct {
	repo       model.CategoryRepository
	products   model.ProductRepository
	dispatcher EventDispatcher
}

func (s *categoryService) Categories() ([]model.Category, error) {
	return s.repo.FindAll()
}

func (s *categoryService) Category(id uuid.UUID) (*model.Category, error) {
	return s.repo.Find(id)
}

func (s *categoryService) CreateCategory(name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	taken, err := s.repo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrCategoryNameTaken
	}

	categoryID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	category := &model.Category{ID: categoryID, Name: name}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.CategoryCreated{CategoryID: categoryID, Name: name})
	return category, nil
}

func (s *categoryService) RenameCategory(id uuid.UUID, name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.repo.Find(id)
	if err != nil {
		return nil, err
	}

	// Renaming a category to its own current name is a no-op success;
	// the uniqueness check only applies against other categories.
	if category.Name == name {
		return category, nil
	}

	taken, err := s.repo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrCategoryNameTaken
	}

	oldName := category.Name
	category.Name = name
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.CategoryRenamed{CategoryID: id, OldName: oldName, NewName: name})
	return category, nil
}

func (s *categoryService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.repo.Find(id); err != nil {
		return err
	}

	referencing, err := s.products.FindByCategory(id)
	if err != nil {
		return err
	}
	if len(referencing) > 0 {
		return model.ErrCategoryInUse
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.CategoryDeleted{CategoryID: id})
	return nil
}
