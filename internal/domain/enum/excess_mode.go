package enum

import "database/sql/driver"

// ExcessMode controls where the excess of a return settlement goes once
// existing due has been cleared
type ExcessMode string

const (
	ExcessModeStoreCredit ExcessMode = "store_credit"
	ExcessModeCashRefund  ExcessMode = "cash_refund"
)

// Valid reports whether the value is a known excess mode
func (m ExcessMode) Valid() bool {
	switch m {
	case ExcessModeStoreCredit, ExcessModeCashRefund:
		return true
	}
	return false
}

func (m ExcessMode) String() string {
	return string(m)
}

func (m ExcessMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *ExcessMode) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*m = ExcessMode(v)
	case []byte:
		*m = ExcessMode(v)
	}
	return nil
}
