package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"github.com/stockflowhq/stockflow-api/internal/domain/ledger"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/pkg/export"
	"github.com/xuri/excelize/v2"
)

// ReportService aggregates sales, dues, and stock into summary figures and
// Excel exports
type ReportService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	expenseRepo     repository.ExpenseRepository

	lowStockThreshold int
}

// NewReportService creates a new report service
func NewReportService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	expenseRepo repository.ExpenseRepository,
	lowStockThreshold int,
) *ReportService {
	return &ReportService{
		transactionRepo:   transactionRepo,
		productRepo:       productRepo,
		customerRepo:      customerRepo,
		expenseRepo:       expenseRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// SummaryStats represents the storefront dashboard figures, amounts in
// major currency units
type SummaryStats struct {
	TotalSales        float64           `json:"total_sales"`
	TotalReturns      float64           `json:"total_returns"`
	NetRevenue        float64           `json:"net_revenue"`
	TotalExpenses     float64           `json:"total_expenses"`
	OutstandingDue    float64           `json:"outstanding_due"`
	StoreCreditIssued float64           `json:"store_credit_issued"`
	TransactionCount  int               `json:"transaction_count"`
	CustomerCount     int               `json:"customer_count"`
	LowStockCount     int               `json:"low_stock_count"`
	DailySales        []DailySalesPoint `json:"daily_sales"`
}

// DailySalesPoint represents one day's net sales
type DailySalesPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// GetSummary computes the dashboard summary for a date window. Sales add,
// returns subtract, payments move due to cash without changing revenue.
func (s *ReportService) GetSummary(ctx context.Context, userID uuid.UUID, from, to *time.Time) (*SummaryStats, error) {
	transactions, err := s.transactionRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &SummaryStats{}
	daily := make(map[string]int64)
	var sales, returns int64

	for _, t := range transactions {
		if from != nil && t.Date.Before(*from) {
			continue
		}
		if to != nil && !t.Date.Before(*to) {
			continue
		}
		stats.TransactionCount++

		switch t.Type {
		case enum.TransactionTypeSale:
			sales += t.Total
			daily[t.Date.Format("2006-01-02")] += t.Total
		case enum.TransactionTypeReturn:
			returns += -t.Total
			daily[t.Date.Format("2006-01-02")] += t.Total
		}
	}
	stats.TotalSales = ledger.FromMinor(sales)
	stats.TotalReturns = ledger.FromMinor(returns)
	stats.NetRevenue = ledger.FromMinor(sales - returns)

	expenses, err := s.expenseRepo.SumByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	var expenseTotal int64
	for _, amount := range expenses {
		expenseTotal += amount
	}
	stats.TotalExpenses = ledger.FromMinor(expenseTotal)

	customers, err := s.customerRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	var due, credit int64
	for _, c := range customers {
		due += c.TotalDue
		credit += c.StoreCredit
	}
	stats.CustomerCount = len(customers)
	stats.OutstandingDue = ledger.FromMinor(due)
	stats.StoreCreditIssued = ledger.FromMinor(credit)

	lowStock, err := s.productRepo.GetLowStock(ctx, userID, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = len(lowStock)

	// Chronological daily series.
	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		stats.DailySales = append(stats.DailySales, DailySalesPoint{
			Date:   day,
			Amount: ledger.FromMinor(daily[day]),
		})
	}
	return stats, nil
}

// ExportInventory builds the inventory workbook for download
func (s *ReportService) ExportInventory(ctx context.Context, userID uuid.UUID) (*excelize.File, string, error) {
	products, err := s.productRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	f, err := export.InventoryWorkbook(products)
	if err != nil {
		return nil, "", err
	}
	return f, export.Filename("Inventory", time.Now().Format("2006-01-02")), nil
}

// ExportTransactions builds the transaction history workbook for download
func (s *ReportService) ExportTransactions(ctx context.Context, userID uuid.UUID, from, to *time.Time) (*excelize.File, string, error) {
	transactions, err := s.transactionRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	filtered := make([]entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if from != nil && t.Date.Before(*from) {
			continue
		}
		if to != nil && !t.Date.Before(*to) {
			continue
		}
		filtered = append(filtered, t)
	}

	f, err := export.TransactionsWorkbook(filtered)
	if err != nil {
		return nil, "", err
	}
	return f, export.Filename("Transactions", time.Now().Format("2006-01-02")), nil
}
