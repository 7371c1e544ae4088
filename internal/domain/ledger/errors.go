package ledger

import (
	"errors"
	"fmt"
)

// Code identifies a specific validation failure kind. Codes are stable,
// machine-readable identifiers surfaced to callers alongside a human
// message and structured detail.
type Code string

const (
	// Payload-shape failures
	CodeMissingTransactionID   Code = "MISSING_TRANSACTION_ID"
	CodeMissingTransactionDate Code = "MISSING_TRANSACTION_DATE"
	CodeInvalidTransactionType Code = "INVALID_TRANSACTION_TYPE"
	CodeInvalidCustomerName    Code = "INVALID_CUSTOMER_NAME"
	CodeInvalidCustomerPhone   Code = "INVALID_CUSTOMER_PHONE"

	// Uniqueness failures
	CodeDuplicateCustomerPhone Code = "DUPLICATE_CUSTOMER_PHONE"

	// Compatibility failures
	CodeInvalidPaymentMethod       Code = "INVALID_PAYMENT_METHOD"
	CodePaymentMethodNotAllowed    Code = "PAYMENT_METHOD_NOT_ALLOWED"
	CodeStoreCreditWithoutCustomer Code = "STORE_CREDIT_WITHOUT_CUSTOMER"

	// Financial-consistency failures
	CodeEmptyItems           Code = "EMPTY_ITEMS"
	CodeInvalidItemQuantity  Code = "INVALID_ITEM_QUANTITY"
	CodeInvalidItemPrice     Code = "INVALID_ITEM_PRICE"
	CodeDiscountExceedsGross Code = "DISCOUNT_EXCEEDS_GROSS"
	CodeInvalidTaxRate       Code = "INVALID_TAX_RATE"
	CodeTotalMismatch        Code = "TOTAL_MISMATCH"

	// Inventory failures
	CodeUnknownProduct         Code = "UNKNOWN_PRODUCT"
	CodeOversaleStock          Code = "OVERSALE_STOCK"
	CodeReturnExceedsSold      Code = "RETURN_EXCEEDS_SOLD"
	CodeReturnExceedsPurchases Code = "RETURN_EXCEEDS_PURCHASES"

	// Balance failures
	CodeNegativeDue       Code = "NEGATIVE_DUE"
	CodeNegativeCredit    Code = "NEGATIVE_CREDIT"
	CodePaymentExceedsDue Code = "PAYMENT_EXCEEDS_DUE"

	// Settlement failures
	CodeSettlementMismatch Code = "SETTLEMENT_MISMATCH"

	// Referential failures
	CodeUnknownCustomer     Code = "UNKNOWN_CUSTOMER"
	CodeUnknownUpfrontOrder Code = "UNKNOWN_UPFRONT_ORDER"
	CodeInvalidUpfrontOrder Code = "INVALID_UPFRONT_ORDER"
)

// Error is a rejected-operation failure with a machine-readable code and
// optional structured detail (offending field, expected vs actual). A
// rejection carries zero side effects: the snapshot it was checked against
// is untouched.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// newError creates a validation error without detail
func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// newErrorDetail creates a validation error with a structured detail payload
func newErrorDetail(code Code, message string, detail map[string]any) *Error {
	return &Error{Code: code, Message: message, Detail: detail}
}

// AsError returns the *Error inside err, or nil if err is not a ledger error
func AsError(err error) *Error {
	var le *Error
	if errors.As(err, &le) {
		return le
	}
	return nil
}
