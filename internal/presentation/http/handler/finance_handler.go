package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/application/service"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/request"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/response"
)

// FinanceHandler handles expense and cash session HTTP requests
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// ListExpenses handles listing expenses within an optional date range
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	from, to := dateRangeFromQuery(c)
	result, err := h.financeService.ListExpenses(c.Request.Context(), *userID, paginationFromQuery(c), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// CreateExpense handles recording an operating expense
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	expense, err := h.financeService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		UserID:   *userID,
		Title:    req.Title,
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// ExpenseBreakdown handles summing expenses per category within an
// optional date range
func (h *FinanceHandler) ExpenseBreakdown(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	from, to := dateRangeFromQuery(c)
	breakdown, err := h.financeService.ExpenseBreakdown(c.Request.Context(), *userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense breakdown retrieved successfully", breakdown)
}

// DeleteExpense handles deleting an expense
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.financeService.DeleteExpense(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted successfully", nil)
}

// OpenCashSession handles opening the day's cash session
func (h *FinanceHandler) OpenCashSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.financeService.OpenCashSession(c.Request.Context(), *userID, req.OpeningBalance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash session opened successfully", session)
}

// CloseCashSession handles closing the open cash session
func (h *FinanceHandler) CloseCashSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CloseCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.financeService.CloseCashSession(c.Request.Context(), *userID, req.ClosingBalance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session closed successfully", session)
}

// GetOpenCashSession handles retrieving the currently open cash session
func (h *FinanceHandler) GetOpenCashSession(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	session, err := h.financeService.GetOpenCashSession(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if session == nil {
		response.NotFound(c, "No open cash session")
		return
	}

	response.OK(c, "Cash session retrieved successfully", session)
}

// ListCashSessions handles listing past cash sessions
func (h *FinanceHandler) ListCashSessions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.financeService.ListCashSessions(c.Request.Context(), *userID, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cash sessions retrieved successfully", result)
}
