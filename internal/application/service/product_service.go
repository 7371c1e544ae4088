package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/apperror"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo       repository.ProductRepository
	categoryRepo      repository.CategoryRepository
	lowStockThreshold int
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, lowStockThreshold int) *ProductService {
	return &ProductService{
		productRepo:       productRepo,
		categoryRepo:      categoryRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID    uuid.UUID
	Name      string
	Barcode   string
	Category  string
	BuyPrice  float64
	SellPrice float64
	Stock     int
	HSNCode   *string
	Image     *string
}

// CreateProduct creates a new catalog item. When no barcode is supplied
// one is allocated from the category's generated band.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.SellPrice < 0 || input.BuyPrice < 0 {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" {
		allocated, err := s.NextBarcode(ctx, input.UserID, input.Category)
		if err != nil {
			return nil, err
		}
		barcode = allocated
	} else {
		existing, err := s.productRepo.GetByBarcode(ctx, input.UserID, barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A product with this barcode already exists")
		}
	}

	product := &entity.Product{
		UserID:    input.UserID,
		Name:      input.Name,
		Barcode:   barcode,
		Category:  input.Category,
		BuyPrice:  ledger.ToMinor(input.BuyPrice),
		SellPrice: ledger.ToMinor(input.SellPrice),
		Stock:     input.Stock,
		HSNCode:   input.HSNCode,
		Image:     input.Image,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode looks a product up by its barcode, for scanner-driven
// checkout
func (s *ProductService) GetProductByBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, userID, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists the catalog with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products at or below the low stock threshold
func (s *ProductService) GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, userID, s.lowStockThreshold)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	UserID    uuid.UUID
	ID        uuid.UUID
	Name      *string
	Barcode   *string
	Category  *string
	BuyPrice  *float64
	SellPrice *float64
	Stock     *int
	HSNCode   *string
	Image     *string
}

// UpdateProduct updates a catalog item. Changing the category of a product
// with a generated barcode reallocates it from the new category's band.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Category != nil && *input.Category != product.Category {
		product.Category = *input.Category
		if input.Barcode == nil && strings.HasPrefix(product.Barcode, ledger.GeneratedBarcodePrefix) {
			allocated, err := s.NextBarcode(ctx, input.UserID, product.Category)
			if err != nil {
				return nil, err
			}
			product.Barcode = allocated
		}
	}
	if input.Barcode != nil {
		product.Barcode = *input.Barcode
	}
	if input.BuyPrice != nil {
		product.BuyPrice = ledger.ToMinor(*input.BuyPrice)
	}
	if input.SellPrice != nil {
		if *input.SellPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices cannot be negative")
		}
		product.SellPrice = ledger.ToMinor(*input.SellPrice)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewBadRequestError("Stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.HSNCode != nil {
		product.HSNCode = input.HSNCode
	}
	if input.Image != nil {
		product.Image = input.Image
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog. History keeps its own
// name and price snapshots, so past transactions are unaffected.
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, userID, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// NextBarcode allocates the next generated barcode for a category
func (s *ProductService) NextBarcode(ctx context.Context, userID uuid.UUID, category string) (string, error) {
	categories, err := s.categoryRepo.List(ctx, userID)
	if err != nil {
		return "", err
	}
	// Index by stored position, not list order, so bands survive deletes.
	maxPos := -1
	for _, c := range categories {
		if c.Position > maxPos {
			maxPos = c.Position
		}
	}
	names := make([]string, maxPos+1)
	for _, c := range categories {
		names[c.Position] = c.Name
	}

	products, err := s.productRepo.ListAll(ctx, userID)
	if err != nil {
		return "", err
	}
	return ledger.NextGeneratedBarcode(category, names, products), nil
}
