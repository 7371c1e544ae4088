package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/application/service"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/request"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers with page-based pagination
func (h *CustomerHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := paginationFromQuery(c)
	search := c.Query("search")

	result, err := h.customerService.ListCustomers(c.Request.Context(), *userID, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// ListWithDue handles listing customers carrying outstanding credit
func (h *CustomerHandler) ListWithDue(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	customers, err := h.customerService.ListCustomersWithDue(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", customers)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		UserID: *userID,
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles retrieving a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer's contact details
func (h *CustomerHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		UserID: *userID,
		ID:     id,
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer without outstanding balances
func (h *CustomerHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// GetCreditLedger handles listing a customer's credit ledger entries,
// newest first
func (h *CustomerHandler) GetCreditLedger(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	entries, err := h.customerService.GetCreditLedger(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit ledger retrieved successfully", entries)
}
