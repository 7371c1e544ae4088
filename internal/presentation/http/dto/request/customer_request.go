package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Phone string `json:"phone" binding:"required,min=1,max=50"`
}

// UpdateCustomerRequest represents a customer update request. Balances are
// owned by the transaction processor and are not accepted here.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone *string `json:"phone" binding:"omitempty,min=1,max=50"`
}
