package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

func testOrder() entity.UpfrontOrder {
	return entity.UpfrontOrder{
		ID:          uuid.New(),
		CustomerID:  uuid.New(),
		Description: "wedding sweets box",
		Quantity:    25,
		TotalCost:   500000,
		AdvancePaid: 200000,
		Remaining:   300000,
		Status:      enum.UpfrontStatusUnpaid,
	}
}

func TestApplyUpfrontPaymentPartial(t *testing.T) {
	order, err := ApplyUpfrontPayment(testOrder(), 100000)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if order.AdvancePaid != 300000 || order.Remaining != 200000 {
		t.Fatalf("advance/remaining = %d/%d, want 300000/200000", order.AdvancePaid, order.Remaining)
	}
	if order.Status != enum.UpfrontStatusUnpaid {
		t.Fatalf("status = %s, want unpaid", order.Status)
	}
}

func TestApplyUpfrontPaymentClears(t *testing.T) {
	order, err := ApplyUpfrontPayment(testOrder(), 300000)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if order.Remaining != 0 || order.Status != enum.UpfrontStatusCleared {
		t.Fatalf("remaining/status = %d/%s, want 0/cleared", order.Remaining, order.Status)
	}
}

func TestApplyUpfrontPaymentRejectsOverpay(t *testing.T) {
	_, err := ApplyUpfrontPayment(testOrder(), 300002)
	assertCode(t, err, CodePaymentExceedsDue)

	// A single minor unit over is drift, not an overpay.
	order, err := ApplyUpfrontPayment(testOrder(), 300001)
	if err != nil {
		t.Fatalf("payment within tolerance rejected: %v", err)
	}
	if order.Remaining != 0 || order.Status != enum.UpfrontStatusCleared {
		t.Fatalf("remaining/status = %d/%s, want 0/cleared", order.Remaining, order.Status)
	}
}

func TestApplyUpfrontPaymentRejectsClearedOrder(t *testing.T) {
	order := testOrder()
	order.AdvancePaid = order.TotalCost
	order.Remaining = 0
	order.Status = enum.UpfrontStatusCleared

	_, err := ApplyUpfrontPayment(order, 100)
	assertCode(t, err, CodePaymentExceedsDue)
}

func TestApplyUpfrontPaymentRejectsNonPositiveAmount(t *testing.T) {
	_, err := ApplyUpfrontPayment(testOrder(), 0)
	assertCode(t, err, CodeInvalidUpfrontOrder)
}
