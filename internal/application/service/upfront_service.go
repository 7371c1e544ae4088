package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/apperror"
)

// UpfrontService handles advance orders
type UpfrontService struct {
	upfrontRepo  repository.UpfrontOrderRepository
	customerRepo repository.CustomerRepository
}

// NewUpfrontService creates a new upfront order service
func NewUpfrontService(upfrontRepo repository.UpfrontOrderRepository, customerRepo repository.CustomerRepository) *UpfrontService {
	return &UpfrontService{
		upfrontRepo:  upfrontRepo,
		customerRepo: customerRepo,
	}
}

// CreateUpfrontOrderInput represents the create upfront order input,
// amounts in major currency units
type CreateUpfrontOrderInput struct {
	UserID      uuid.UUID
	CustomerID  uuid.UUID
	Description string
	Quantity    int
	TotalCost   float64
	AdvancePaid float64
}

// CreateUpfrontOrder records a new advance order. Remaining and status are
// derived server-side; the payload only supplies cost and advance.
func (s *UpfrontService) CreateUpfrontOrder(ctx context.Context, input *CreateUpfrontOrderInput) (*entity.UpfrontOrder, error) {
	order := entity.UpfrontOrder{
		ID:          uuid.New(),
		UserID:      input.UserID,
		CustomerID:  input.CustomerID,
		Description: input.Description,
		Quantity:    input.Quantity,
		TotalCost:   ledger.ToMinor(input.TotalCost),
		AdvancePaid: ledger.ToMinor(input.AdvancePaid),
	}
	order.Remaining = order.TotalCost - order.AdvancePaid
	if order.Remaining < 0 {
		order.Remaining = 0
	}
	order.Status = enum.UpfrontStatusUnpaid
	if order.Remaining <= ledger.ToleranceMinor {
		order.Remaining = 0
		order.Status = enum.UpfrontStatusCleared
	}

	customers, err := s.customerRepo.ListAll(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateUpfrontOrder(order, customers); err != nil {
		return nil, err
	}

	if err := s.upfrontRepo.Create(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetUpfrontOrder retrieves an upfront order by ID
func (s *UpfrontService) GetUpfrontOrder(ctx context.Context, userID, id uuid.UUID) (*entity.UpfrontOrder, error) {
	order, err := s.upfrontRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, apperror.NewNotFoundError("Upfront order")
	}
	return order, nil
}

// ListUpfrontOrders lists upfront orders, optionally filtered by status
func (s *UpfrontService) ListUpfrontOrders(ctx context.Context, userID uuid.UUID, status enum.UpfrontStatus) ([]entity.UpfrontOrder, error) {
	if status != "" && !status.Valid() {
		return nil, apperror.NewBadRequestError("Unknown status filter")
	}
	return s.upfrontRepo.List(ctx, userID, status)
}

// CollectPayment applies a payment against an order's remaining balance
func (s *UpfrontService) CollectPayment(ctx context.Context, userID, id uuid.UUID, amount float64) (*entity.UpfrontOrder, error) {
	order, err := s.GetUpfrontOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated, err := ledger.ApplyUpfrontPayment(*order, ledger.ToMinor(amount))
	if err != nil {
		return nil, err
	}
	if err := s.upfrontRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUpfrontOrder removes an upfront order
func (s *UpfrontService) DeleteUpfrontOrder(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetUpfrontOrder(ctx, userID, id); err != nil {
		return err
	}
	return s.upfrontRepo.Delete(ctx, id)
}
