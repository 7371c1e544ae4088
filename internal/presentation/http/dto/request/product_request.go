package request

// CreateProductRequest represents a product creation request. Leaving
// barcode empty allocates one from the category's generated band.
type CreateProductRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=255"`
	Barcode   string  `json:"barcode" binding:"omitempty,max=100"`
	Category  string  `json:"category" binding:"required,min=1,max=100"`
	BuyPrice  float64 `json:"buy_price" binding:"min=0"`
	SellPrice float64 `json:"sell_price" binding:"required,gt=0"`
	Stock     int     `json:"stock" binding:"min=0"`
	HSNCode   *string `json:"hsn_code"`
	Image     *string `json:"image"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Barcode   *string  `json:"barcode" binding:"omitempty,max=100"`
	Category  *string  `json:"category" binding:"omitempty,min=1,max=100"`
	BuyPrice  *float64 `json:"buy_price" binding:"omitempty,min=0"`
	SellPrice *float64 `json:"sell_price" binding:"omitempty,gt=0"`
	Stock     *int     `json:"stock" binding:"omitempty,min=0"`
	HSNCode   *string  `json:"hsn_code"`
	Image     *string  `json:"image"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RenameCategoryRequest represents a category rename request
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
