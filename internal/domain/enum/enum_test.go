package enum

import "testing"

func TestTransactionTypeValid(t *testing.T) {
	for _, tt := range []TransactionType{TransactionTypeSale, TransactionTypeReturn, TransactionTypePayment} {
		if !tt.Valid() {
			t.Errorf("%s should be valid", tt)
		}
	}
	if TransactionType("refund").Valid() {
		t.Error("refund is not a transaction type")
	}
	if TransactionType("").Valid() {
		t.Error("empty transaction type should be invalid")
	}
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodCash, PaymentMethodCredit, PaymentMethodOnline} {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	// Methods are case-sensitive; clients must send the canonical spelling
	if PaymentMethod("cash").Valid() {
		t.Error("lowercase cash should be invalid")
	}
}

func TestExcessModeValid(t *testing.T) {
	if !ExcessModeStoreCredit.Valid() || !ExcessModeCashRefund.Valid() {
		t.Error("known excess modes should be valid")
	}
	if ExcessMode("gift_card").Valid() {
		t.Error("gift_card is not an excess mode")
	}
}

func TestLedgerEntryTypeValid(t *testing.T) {
	for _, et := range []LedgerEntryType{LedgerEntryTypeCreditUsed, LedgerEntryTypeCreditIssued} {
		if !et.Valid() {
			t.Errorf("%s should be valid", et)
		}
	}
	if LedgerEntryType("credit_expired").Valid() {
		t.Error("credit_expired is not a ledger entry type")
	}
	if v, err := LedgerEntryTypeCreditIssued.Value(); err != nil || v != "credit_issued" {
		t.Errorf("Value() = %v, %v, want credit_issued", v, err)
	}
}

func TestScanRoundTrip(t *testing.T) {
	var tt TransactionType
	if err := tt.Scan("sale"); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if tt != TransactionTypeSale {
		t.Errorf("scanned %q, want sale", tt)
	}

	v, err := TransactionTypeReturn.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != "return" {
		t.Errorf("Value() = %v, want return", v)
	}
}
