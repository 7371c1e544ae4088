package ledger

import "testing"

func TestToMinorRoundsHalfUp(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{20.58, 2058},
		{0.01, 1},
		{1.005, 101},
		{19.999, 2000},
		{0, 0},
		{-3.15, -315},
		{-1.005, -101},
		{2.675, 268},
	}
	for _, tc := range cases {
		if got := ToMinor(tc.amount); got != tc.want {
			t.Fatalf("ToMinor(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestFromMinorRoundTrips(t *testing.T) {
	for _, minor := range []int64{0, 1, 99, 158, 2058, -315} {
		if got := ToMinor(FromMinor(minor)); got != minor {
			t.Fatalf("round trip of %d gave %d", minor, got)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(2058, 2059) {
		t.Fatalf("one minor unit of drift should be tolerated")
	}
	if !WithinTolerance(100, 100) {
		t.Fatalf("equal amounts should be tolerated")
	}
	if WithinTolerance(100, 102) {
		t.Fatalf("two minor units of drift should not be tolerated")
	}
}
