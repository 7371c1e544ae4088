package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

// UpfrontOrderRepository defines the interface for upfront order data operations
type UpfrontOrderRepository interface {
	Create(ctx context.Context, order *entity.UpfrontOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.UpfrontOrder, error)
	Update(ctx context.Context, order *entity.UpfrontOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns orders newest-first, optionally filtered by status.
	List(ctx context.Context, userID uuid.UUID, status enum.UpfrontStatus) ([]entity.UpfrontOrder, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.UpfrontOrder, error)
}
