package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/apperror"
)

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories lists the store's categories in band order
func (s *CategoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx, userID)
}

// CreateCategory creates a new category at the next free position
func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	existing, err := s.categoryRepo.GetByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	position, err := s.categoryRepo.NextPosition(ctx, userID)
	if err != nil {
		return nil, err
	}

	category := &entity.Category{
		UserID:   userID,
		Name:     name,
		Position: position,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RenameCategory renames a category and moves its products with it. The
// position, and with it the barcode band, stays put.
func (s *CategoryService) RenameCategory(ctx context.Context, userID, id uuid.UUID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.UserID != userID {
		return nil, apperror.NewNotFoundError("Category")
	}

	duplicate, err := s.categoryRepo.GetByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != id {
		return nil, apperror.NewConflictError("Category already exists")
	}

	oldName := category.Name
	if err := s.categoryRepo.Rename(ctx, id, name); err != nil {
		return nil, err
	}

	// Move products over to the new name.
	products, err := s.productRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Category != oldName {
			continue
		}
		products[i].Category = name
		if err := s.productRepo.Update(ctx, &products[i]); err != nil {
			return nil, err
		}
	}

	category.Name = name
	return category, nil
}

// DeleteCategory removes a category. Products keep their category string
// and barcodes; only new allocations are affected.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil || category.UserID != userID {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}
