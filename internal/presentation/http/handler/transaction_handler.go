package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/application/service"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/request"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/response"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Process handles submitting a sale, return, or payment. Rejections come
// back as 422 with a machine-readable code; nothing is persisted on
// rejection.
func (h *TransactionHandler) Process(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ProcessTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.ProcessTransactionInput{
		UserID:         *userID,
		Type:           enum.TransactionType(req.Type),
		Date:           req.Date,
		CustomerID:     req.CustomerID,
		PaymentMethod:  enum.PaymentMethod(req.PaymentMethod),
		UseStoreCredit: req.UseStoreCredit,
		TaxRate:        req.TaxRate,
		TaxLabel:       req.TaxLabel,
		Total:          req.Total,
	}
	if req.ReturnExcessMode != nil {
		mode := enum.ExcessMode(*req.ReturnExcessMode)
		input.ReturnExcessMode = &mode
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.TransactionItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			SellPrice: item.SellPrice,
			Discount:  item.Discount,
		})
	}

	output, err := h.transactionService.ProcessTransaction(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction processed successfully", gin.H{
		"transaction": output.Transaction,
		"customer":    output.Customer,
	})
}

// List handles listing transaction history with filters, newest first
func (h *TransactionHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	from, to := dateRangeFromQuery(c)
	params := &repository.TransactionFilterParams{
		Pagination: paginationFromQuery(c),
		Type:       enum.TransactionType(c.Query("type")),
		From:       from,
		To:         to,
		Search:     c.Query("search"),
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &customerID
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get handles retrieving a single transaction with its items and
// settlement
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", tx)
}
