package request

// CreateExpenseRequest represents an expense creation request
type CreateExpenseRequest struct {
	Title    string  `json:"title" binding:"required,min=1,max=255"`
	Category string  `json:"category" binding:"omitempty,max=100"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Note     *string `json:"note"`
}

// OpenCashSessionRequest represents a cash session open request
type OpenCashSessionRequest struct {
	OpeningBalance float64 `json:"opening_balance" binding:"min=0"`
}

// CloseCashSessionRequest represents a cash session close request
type CloseCashSessionRequest struct {
	ClosingBalance float64 `json:"closing_balance" binding:"min=0"`
}
