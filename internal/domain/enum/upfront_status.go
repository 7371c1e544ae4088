package enum

import "database/sql/driver"

// UpfrontStatus is the derived payment state of an upfront order. It is
// always recomputed from the remaining balance, never set independently.
type UpfrontStatus string

const (
	UpfrontStatusUnpaid  UpfrontStatus = "unpaid"
	UpfrontStatusCleared UpfrontStatus = "cleared"
)

// Valid reports whether the value is a known upfront status
func (s UpfrontStatus) Valid() bool {
	switch s {
	case UpfrontStatusUnpaid, UpfrontStatusCleared:
		return true
	}
	return false
}

func (s UpfrontStatus) String() string {
	return string(s)
}

func (s UpfrontStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *UpfrontStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = UpfrontStatus(v)
	case []byte:
		*s = UpfrontStatus(v)
	}
	return nil
}
