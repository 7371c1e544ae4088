package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	domainRepo "github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"gorm.io/gorm"
)

type upfrontOrderRepository struct {
	db *gorm.DB
}

// NewUpfrontOrderRepository creates a new upfront order repository
func NewUpfrontOrderRepository(db *gorm.DB) domainRepo.UpfrontOrderRepository {
	return &upfrontOrderRepository{db: db}
}

func (r *upfrontOrderRepository) Create(ctx context.Context, order *entity.UpfrontOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *upfrontOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.UpfrontOrder, error) {
	var order entity.UpfrontOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *upfrontOrderRepository) Update(ctx context.Context, order *entity.UpfrontOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *upfrontOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.UpfrontOrder{}, "id = ?", id).Error
}

func (r *upfrontOrderRepository) List(ctx context.Context, userID uuid.UUID, status enum.UpfrontStatus) ([]entity.UpfrontOrder, error) {
	var orders []entity.UpfrontOrder
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *upfrontOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.UpfrontOrder, error) {
	var orders []entity.UpfrontOrder
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
