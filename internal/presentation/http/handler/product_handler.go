package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/application/service"
	"github.com/stockflowhq/stockflow-api/internal/domain/repository"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/request"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products with filters and pagination
func (h *ProductHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     filter.Search,
		Category:   filter.Category,
		LowStock:   filter.LowStock,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		UserID:    *userID,
		Name:      req.Name,
		Barcode:   req.Barcode,
		Category:  req.Category,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		HSNCode:   req.HSNCode,
		Image:     req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetByBarcode handles the scanner lookup path
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	barcode := c.Param("barcode")
	product, err := h.productService.GetProductByBarcode(c.Request.Context(), *userID, barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetLowStock handles listing products at or below the low stock threshold
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	products, err := h.productService.GetLowStock(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// NextBarcode handles previewing the next generated barcode for a category
func (h *ProductHandler) NextBarcode(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	category := c.Query("category")
	if category == "" {
		response.BadRequest(c, "Category is required")
		return
	}

	barcode, err := h.productService.NextBarcode(c.Request.Context(), *userID, category)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Barcode generated successfully", gin.H{"barcode": barcode})
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		UserID:    *userID,
		ID:        id,
		Name:      req.Name,
		Barcode:   req.Barcode,
		Category:  req.Category,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		HSNCode:   req.HSNCode,
		Image:     req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}
