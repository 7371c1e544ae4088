package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	domainRepo "github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Where("user_id = ?", userID)

	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) ListWithDue(ctx context.Context, userID uuid.UUID) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND total_due > 0", userID).
		Order("total_due DESC").
		Find(&customers).Error
	return customers, err
}
