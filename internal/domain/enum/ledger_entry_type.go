package enum

import "database/sql/driver"

// LedgerEntryType classifies a store-credit ledger entry
type LedgerEntryType string

const (
	LedgerEntryTypeCreditUsed   LedgerEntryType = "credit_used"
	LedgerEntryTypeCreditIssued LedgerEntryType = "credit_issued"
)

// Valid reports whether the value is a known ledger entry type
func (t LedgerEntryType) Valid() bool {
	switch t {
	case LedgerEntryTypeCreditUsed, LedgerEntryTypeCreditIssued:
		return true
	}
	return false
}

func (t LedgerEntryType) String() string {
	return string(t)
}

func (t LedgerEntryType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *LedgerEntryType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = LedgerEntryType(v)
	case []byte:
		*t = LedgerEntryType(v)
	}
	return nil
}
