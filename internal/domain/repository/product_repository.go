package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListAll returns the user's full catalog, unpaginated, for snapshot
	// loading and exports.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Product, error)
	GetLowStock(ctx context.Context, userID uuid.UUID, threshold int) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// CategoryRepository defines the interface for category data operations.
// Positions are append-only so barcode bands stay stable.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the user's categories ordered by position.
	List(ctx context.Context, userID uuid.UUID) ([]entity.Category, error)
	// NextPosition returns the position a newly created category should take.
	NextPosition(ctx context.Context, userID uuid.UUID) (int, error)
}
