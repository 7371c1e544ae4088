package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	domainRepo "github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, from, to *time.Time) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Expense{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) SumByCategory(ctx context.Context, userID uuid.UUID, from, to *time.Time) (map[string]int64, error) {
	type row struct {
		Category string
		Total    int64
	}
	var rows []row

	query := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at < ?", *to)
	}
	if err := query.Group("category").Scan(&rows).Error; err != nil {
		return nil, err
	}

	sums := make(map[string]int64, len(rows))
	for _, r := range rows {
		sums[r.Category] = r.Total
	}
	return sums, nil
}

type cashSessionRepository struct {
	db *gorm.DB
}

// NewCashSessionRepository creates a new cash session repository
func NewCashSessionRepository(db *gorm.DB) domainRepo.CashSessionRepository {
	return &cashSessionRepository{db: db}
}

func (r *cashSessionRepository) Create(ctx context.Context, session *entity.CashSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *cashSessionRepository) Update(ctx context.Context, session *entity.CashSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *cashSessionRepository) GetOpen(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		First(&session, "user_id = ? AND closed_at IS NULL", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.CashSession, int64, error) {
	var sessions []entity.CashSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CashSession{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("opened_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}
