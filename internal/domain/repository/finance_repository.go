package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns expenses newest-first within the window, paginated.
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, from, to *time.Time) ([]entity.Expense, int64, error)
	// SumByCategory totals expenses per category within the window.
	SumByCategory(ctx context.Context, userID uuid.UUID, from, to *time.Time) (map[string]int64, error)
}

// CashSessionRepository defines the interface for cash drawer sessions.
// At most one session per user is open at any time.
type CashSessionRepository interface {
	Create(ctx context.Context, session *entity.CashSession) error
	Update(ctx context.Context, session *entity.CashSession) error
	// GetOpen returns the user's open session, or nil when none is open.
	GetOpen(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.CashSession, int64, error)
}
