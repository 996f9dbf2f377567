package category

import (
	"context"
	"errors"

	"botmart/domain"
	"botmart/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

type categoryService struct {
	categoryRepo CategoryRepository
	validate     *validator.Validate
}

func NewCategoryService(categoryRepo CategoryRepository, validate *validator.Validate) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		validate:     validate,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (domain.Category, error) {
	if err := s.validate.Var(category.CategoryName, "required,min=2"); err != nil {
		logger.Error("Invalid category name", err)
		return domain.Category{}, errors.New("category name must be at least 2 characters")
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("Failed to create category", err)
		return domain.Category{}, err
	}

	return *category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get category by ID", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uint64, updateData *domain.Category) (domain.Category, error) {
	existing, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Category not found for update", err)
		return domain.Category{}, err
	}

	if updateData.CategoryName != "" {
		existing.CategoryName = updateData.CategoryName
	}

	if err := s.categoryRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update category", err)
		return domain.Category{}, err
	}

	return existing, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		logger.Error("Category not found for deletion", err)
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete category", err)
		return err
	}

	return nil
}
