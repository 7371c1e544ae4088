package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/application/service"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/request"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/response"
)

// UpfrontHandler handles advance order HTTP requests
type UpfrontHandler struct {
	upfrontService *service.UpfrontService
}

// NewUpfrontHandler creates a new upfront order handler
func NewUpfrontHandler(upfrontService *service.UpfrontService) *UpfrontHandler {
	return &UpfrontHandler{upfrontService: upfrontService}
}

// List handles listing upfront orders, optionally filtered by status
func (h *UpfrontHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	status := enum.UpfrontStatus(c.Query("status"))
	orders, err := h.upfrontService.ListUpfrontOrders(c.Request.Context(), *userID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Upfront orders retrieved successfully", orders)
}

// Create handles recording a new advance order
func (h *UpfrontHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateUpfrontOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.upfrontService.CreateUpfrontOrder(c.Request.Context(), &service.CreateUpfrontOrderInput{
		UserID:      *userID,
		CustomerID:  req.CustomerID,
		Description: req.Description,
		Quantity:    req.Quantity,
		TotalCost:   req.TotalCost,
		AdvancePaid: req.AdvancePaid,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Upfront order created successfully", order)
}

// Get handles retrieving a single upfront order
func (h *UpfrontHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.upfrontService.GetUpfrontOrder(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Upfront order retrieved successfully", order)
}

// CollectPayment handles collecting a payment against an open order
func (h *UpfrontHandler) CollectPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.CollectUpfrontPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.upfrontService.CollectPayment(c.Request.Context(), *userID, id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment collected successfully", order)
}

// Delete handles deleting an upfront order
func (h *UpfrontHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.upfrontService.DeleteUpfrontOrder(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Upfront order deleted successfully", nil)
}
