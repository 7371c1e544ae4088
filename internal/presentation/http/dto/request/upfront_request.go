package request

import "github.com/google/uuid"

// CreateUpfrontOrderRequest represents an advance order creation request.
// Remaining and status are derived server-side.
type CreateUpfrontOrderRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" binding:"required"`
	Description string    `json:"description" binding:"required,min=1,max=500"`
	Quantity    int       `json:"quantity" binding:"required,gt=0"`
	TotalCost   float64   `json:"total_cost" binding:"required,gt=0"`
	AdvancePaid float64   `json:"advance_paid" binding:"min=0"`
}

// CollectUpfrontPaymentRequest represents a payment against an open
// advance order
type CollectUpfrontPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
