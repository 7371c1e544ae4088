package enum

import "database/sql/driver"

// PaymentMethod is how a transaction is settled
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodCredit PaymentMethod = "Credit"
	PaymentMethodOnline PaymentMethod = "Online"
)

// Valid reports whether the value is a known payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCredit, PaymentMethodOnline:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(v)
	}
	return nil
}
