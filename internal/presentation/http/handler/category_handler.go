package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/application/service"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/request"
	"github.com/stockflowhq/stockflow-api/internal/presentation/http/dto/response"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles listing categories in position order
func (h *CategoryHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// Create handles creating a category
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), *userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// Rename handles renaming a category. Products in the category follow the
// new name.
func (h *CategoryHandler) Rename(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req request.RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.RenameCategory(c.Request.Context(), *userID, id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category renamed successfully", category)
}

// Delete handles deleting a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}
