package enum

import "database/sql/driver"

// TransactionType classifies a ledger transaction
type TransactionType string

const (
	TransactionTypeSale    TransactionType = "sale"
	TransactionTypeReturn  TransactionType = "return"
	TransactionTypePayment TransactionType = "payment"
)

// Valid reports whether the value is a known transaction type
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeReturn, TransactionTypePayment:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(v)
	}
	return nil
}
