package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	domainRepo "github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) CreateBatch(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(products, 100).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		First(&product, "user_id = ? AND barcode = ?", userID, barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{}).Where("user_id = ?", userID)

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR barcode ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.LowStock {
		query = query.Where("stock <= ?", 10)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "name ASC"
	switch params.SortBy {
	case "stock", "sell_price", "total_sold", "created_at":
		dir := "ASC"
		if params.SortOrder == "desc" {
			dir = "DESC"
		}
		order = params.SortBy + " " + dir
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(order).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetLowStock(ctx context.Context, userID uuid.UUID, threshold int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND stock <= ?", userID, threshold).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "user_id = ? AND name = ?", userID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&categories).Error
	return categories, err
}

// NextPosition returns max(position)+1 rather than count, so positions of
// deleted categories are never reused and barcode bands stay stable.
func (r *categoryRepository) NextPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("user_id = ?", userID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
