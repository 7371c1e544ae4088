package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/apperror"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// FinanceService handles expenses and cash drawer sessions
type FinanceService struct {
	expenseRepo repository.ExpenseRepository
	sessionRepo repository.CashSessionRepository
}

// NewFinanceService creates a new finance service
func NewFinanceService(expenseRepo repository.ExpenseRepository, sessionRepo repository.CashSessionRepository) *FinanceService {
	return &FinanceService{
		expenseRepo: expenseRepo,
		sessionRepo: sessionRepo,
	}
}

// CreateExpenseInput represents the create expense input, amount in major
// currency units
type CreateExpenseInput struct {
	UserID   uuid.UUID
	Title    string
	Category string
	Amount   float64
	Note     *string
}

// CreateExpense records an operating expense
func (s *FinanceService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperror.NewBadRequestError("Expense title is required")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Expense amount must be positive")
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "Other"
	}

	expense := &entity.Expense{
		UserID:   input.UserID,
		Title:    input.Title,
		Category: category,
		Amount:   ledger.ToMinor(input.Amount),
		Note:     input.Note,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses lists expenses newest-first within an optional window
func (s *FinanceService) ListExpenses(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, from, to *time.Time) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, userID, params, from, to)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// ExpenseBreakdown totals expenses per category within an optional window,
// amounts in major currency units
func (s *FinanceService) ExpenseBreakdown(ctx context.Context, userID uuid.UUID, from, to *time.Time) (map[string]float64, error) {
	sums, err := s.expenseRepo.SumByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]float64, len(sums))
	for category, minor := range sums {
		breakdown[category] = ledger.FromMinor(minor)
	}
	return breakdown, nil
}

// DeleteExpense removes an expense record
func (s *FinanceService) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil || expense.UserID != userID {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// OpenCashSession opens a drawer session with an opening float. Only one
// session can be open at a time.
func (s *FinanceService) OpenCashSession(ctx context.Context, userID uuid.UUID, openingBalance float64) (*entity.CashSession, error) {
	if openingBalance < 0 {
		return nil, apperror.NewBadRequestError("Opening balance cannot be negative")
	}

	open, err := s.sessionRepo.GetOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperror.NewConflictError("A cash session is already open")
	}

	session := &entity.CashSession{
		UserID:         userID,
		OpeningBalance: ledger.ToMinor(openingBalance),
		OpenedAt:       time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CloseCashSession closes the open drawer session with a counted closing
// balance
func (s *FinanceService) CloseCashSession(ctx context.Context, userID uuid.UUID, closingBalance float64) (*entity.CashSession, error) {
	if closingBalance < 0 {
		return nil, apperror.NewBadRequestError("Closing balance cannot be negative")
	}

	session, err := s.sessionRepo.GetOpen(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Open cash session")
	}

	closing := ledger.ToMinor(closingBalance)
	now := time.Now()
	session.ClosingBalance = &closing
	session.ClosedAt = &now
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetOpenCashSession returns the open drawer session, or nil when closed
func (s *FinanceService) GetOpenCashSession(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error) {
	return s.sessionRepo.GetOpen(ctx, userID)
}

// ListCashSessions lists past drawer sessions newest-first
func (s *FinanceService) ListCashSessions(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CashSession], error) {
	sessions, total, err := s.sessionRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}
