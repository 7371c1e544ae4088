package request

import (
	"time"

	"github.com/google/uuid"
)

// TransactionItemRequest is one line item of a sale or return. Amounts are
// in major currency units; the ledger converts to minor units internally.
type TransactionItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	SellPrice float64   `json:"sell_price" binding:"min=0"`
	Discount  float64   `json:"discount" binding:"min=0"`
}

// ProcessTransactionRequest represents a submitted sale, return, or payment
type ProcessTransactionRequest struct {
	Type             string                   `json:"type" binding:"required,oneof=sale return payment"`
	Date             time.Time                `json:"date" binding:"required"`
	CustomerID       *uuid.UUID               `json:"customer_id"`
	PaymentMethod    string                   `json:"payment_method" binding:"required"`
	UseStoreCredit   bool                     `json:"use_store_credit"`
	TaxRate          float64                  `json:"tax_rate" binding:"min=0,max=100"`
	TaxLabel         string                   `json:"tax_label"`
	Total            float64                  `json:"total"`
	ReturnExcessMode *string                  `json:"return_excess_mode"`
	Items            []TransactionItemRequest `json:"items"`
}

// TransactionFilterRequest represents transaction history filter parameters
type TransactionFilterRequest struct {
	Type       string `form:"type"`
	CustomerID string `form:"customer_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
