package ledger

import (
	"testing"

	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

func TestResolveReturnSettlement(t *testing.T) {
	cases := []struct {
		name         string
		returnAmount int64
		due          int64
		mode         enum.ExcessMode
		wantApplied  int64
		wantCredit   int64
		wantCash     int64
	}{
		{
			name:         "excess over due becomes store credit",
			returnAmount: 315,
			due:          158,
			mode:         enum.ExcessModeStoreCredit,
			wantApplied:  158,
			wantCredit:   157,
		},
		{
			name:         "excess over due refunded in cash",
			returnAmount: 315,
			due:          158,
			mode:         enum.ExcessModeCashRefund,
			wantApplied:  158,
			wantCash:     157,
		},
		{
			name:         "return fully absorbed by due",
			returnAmount: 100,
			due:          500,
			mode:         enum.ExcessModeCashRefund,
			wantApplied:  100,
		},
		{
			name:         "no due routes everything to credit",
			returnAmount: 250,
			due:          0,
			mode:         enum.ExcessModeStoreCredit,
			wantCredit:   250,
		},
		{
			name:         "unknown mode falls back to store credit",
			returnAmount: 200,
			due:          50,
			mode:         enum.ExcessMode("gift_card"),
			wantApplied:  50,
			wantCredit:   150,
		},
		{
			name:         "negative inputs are normalized",
			returnAmount: -315,
			due:          -10,
			mode:         enum.ExcessModeStoreCredit,
			wantCredit:   315,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveReturnSettlement(tc.returnAmount, tc.due, tc.mode)
			if got.AppliedToDue != tc.wantApplied {
				t.Fatalf("applied to due = %d, want %d", got.AppliedToDue, tc.wantApplied)
			}
			if got.CreditedAmount != tc.wantCredit {
				t.Fatalf("credited = %d, want %d", got.CreditedAmount, tc.wantCredit)
			}
			if got.RefundedCash != tc.wantCash {
				t.Fatalf("refunded = %d, want %d", got.RefundedCash, tc.wantCash)
			}
			sum := got.AppliedToDue + got.CreditedAmount + got.RefundedCash
			want := tc.returnAmount
			if want < 0 {
				want = -want
			}
			if sum != want {
				t.Fatalf("settlement parts sum to %d, want %d", sum, want)
			}
		})
	}
}
