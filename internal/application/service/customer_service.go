package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/apperror"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.CreditLedgerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, ledgerRepo repository.CreditLedgerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UserID uuid.UUID
	Name   string
	Phone  string
}

// CreateCustomer creates a new customer after checking the payload against
// the ledger's admission rules (non-empty name, phone with digits, no
// duplicate phone for this store)
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		ID:     uuid.New(),
		UserID: input.UserID,
		Name:   input.Name,
		Phone:  input.Phone,
	}

	existing, err := s.customerRepo.ListAll(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateNewCustomer(*customer, existing); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, userID, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.UserID != userID {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists the store's customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithDue lists customers carrying an outstanding balance
func (s *CustomerService) ListCustomersWithDue(ctx context.Context, userID uuid.UUID) ([]entity.Customer, error) {
	return s.customerRepo.ListWithDue(ctx, userID)
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Name   *string
	Phone  *string
}

// UpdateCustomer updates a customer's contact details. Balances are owned
// by the transaction processor and cannot be edited here.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}

	existing, err := s.customerRepo.ListAll(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateNewCustomer(*customer, existing); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer. Customers with an outstanding due or
// unspent store credit cannot be deleted, their balances would be orphaned.
func (s *CustomerService) DeleteCustomer(ctx context.Context, userID, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, userID, id)
	if err != nil {
		return err
	}
	if customer.TotalDue > 0 || customer.StoreCredit > 0 {
		return apperror.NewConflictError("Customer has outstanding balances")
	}
	return s.customerRepo.Delete(ctx, id)
}

// GetCreditLedger returns a customer's store credit audit trail, newest-first
func (s *CustomerService) GetCreditLedger(ctx context.Context, userID, customerID uuid.UUID) ([]entity.CreditLedgerEntry, error) {
	if _, err := s.GetCustomer(ctx, userID, customerID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListByCustomer(ctx, customerID)
}
