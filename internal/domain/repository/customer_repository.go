package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// ListAll returns the user's full customer list, unpaginated, for
	// snapshot loading and phone-uniqueness checks.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Customer, error)
	// ListWithDue returns customers carrying an outstanding balance.
	ListWithDue(ctx context.Context, userID uuid.UUID) ([]entity.Customer, error)
}
