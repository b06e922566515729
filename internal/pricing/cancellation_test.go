package pricing

import (
	"testing"
	"time"
)

func TestDaysBeforeCheckIn(t *testing.T) {
	checkIn := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name        string
		cancelledAt time.Time
		want        int
	}{
		{"ten days ahead", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 10},
		// 25 hours of notice rounds up to 2 days.
		{"partial day rounds up", time.Date(2025, 7, 8, 23, 0, 0, 0, time.UTC), 2},
		{"same moment", checkIn, 0},
		{"after check-in", time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC), -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBeforeCheckIn(checkIn, tc.cancelledAt); got != tc.want {
				t.Errorf("DaysBeforeCheckIn = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestApplicableRule_FirstMatchWins(t *testing.T) {
	// Overlapping windows sorted by DaysMin descending: the resolver
	// must pick the first match in that order, not the narrower window.
	rules := []FeeRule{
		{DaysMin: 5, DaysMax: 10, FeeType: FeeTypePercentage, FeeValue: 20},
		{DaysMin: 0, DaysMax: 7, FeeType: FeeTypePercentage, FeeValue: 50},
	}
	got, ok := ApplicableRule(6, rules)
	if !ok {
		t.Fatal("expected a rule to match 6 days")
	}
	if got.FeeValue != 20 {
		t.Errorf("resolved FeeValue = %v, want 20 (the [5,10] rule)", got.FeeValue)
	}
}

func TestApplicableRule_BoundsInclusive(t *testing.T) {
	rules := []FeeRule{
		{DaysMin: 30, DaysMax: DaysMaxSentinel, FeeType: FeeTypeFixedAmount, FeeValue: 0},
		{DaysMin: 7, DaysMax: 29, FeeType: FeeTypePercentage, FeeValue: 25},
		{DaysMin: 0, DaysMax: 6, FeeType: FeeTypePercentage, FeeValue: 100},
	}
	for days, wantValue := range map[int]float64{
		30:   0,   // lower bound of the open-ended tier
		9999: 0,   // sentinel upper bound
		29:   25,  // upper bound inclusive
		7:    25,  // lower bound inclusive
		6:    100, // last-minute tier
		0:    100, // cancelling on check-in day
	} {
		got, ok := ApplicableRule(days, rules)
		if !ok {
			t.Fatalf("no rule matched %d days", days)
		}
		if got.FeeValue != wantValue {
			t.Errorf("days=%d resolved FeeValue %v, want %v", days, got.FeeValue, wantValue)
		}
	}
}

func TestApplicableRule_NoMatch(t *testing.T) {
	// Hotel only covers [0,30]; 40 days of notice falls in a gap and
	// must be reported as "no applicable rule", not a zero fee.
	rules := []FeeRule{
		{DaysMin: 0, DaysMax: 30, FeeType: FeeTypePercentage, FeeValue: 50},
	}
	if _, ok := ApplicableRule(40, rules); ok {
		t.Error("expected no applicable rule for 40 days")
	}
	if _, ok := ApplicableRule(-1, rules); ok {
		t.Error("expected no applicable rule for post-check-in cancellation")
	}
	if _, ok := ApplicableRule(5, nil); ok {
		t.Error("expected no applicable rule for an empty rule set")
	}
}

func TestCancellationFee_Percentage(t *testing.T) {
	rule := FeeRule{FeeType: FeeTypePercentage, FeeValue: 25}
	got := CancellationFee(10, 100, 800, rule)
	if got.FeeAmount != 200 {
		t.Errorf("FeeAmount = %v, want 200", got.FeeAmount)
	}
	if got.RefundAmount != 600 {
		t.Errorf("RefundAmount = %v, want 600", got.RefundAmount)
	}
	if got.DaysBeforeCheckIn != 10 {
		t.Errorf("DaysBeforeCheckIn = %d, want 10", got.DaysBeforeCheckIn)
	}
}

// Booking total $500, two nights at the first night's $100 rate.
func TestCancellationFee_Nights(t *testing.T) {
	rule := FeeRule{FeeType: FeeTypeNights, FeeValue: 2}
	got := CancellationFee(3, 100, 500, rule)
	if got.FeeAmount != 200 || got.RefundAmount != 300 {
		t.Errorf("fee=%v refund=%v, want 200/300", got.FeeAmount, got.RefundAmount)
	}
}

func TestCancellationFee_FixedAmount(t *testing.T) {
	rule := FeeRule{FeeType: FeeTypeFixedAmount, FeeValue: 75}
	got := CancellationFee(14, 250, 1200, rule)
	if got.FeeAmount != 75 || got.RefundAmount != 1125 {
		t.Errorf("fee=%v refund=%v, want 75/1125", got.FeeAmount, got.RefundAmount)
	}
}

// A malformed 150% rule must clamp to the booking total; the guest can
// never owe more than they paid.
func TestCancellationFee_ClampsToTotal(t *testing.T) {
	rule := FeeRule{FeeType: FeeTypePercentage, FeeValue: 150}
	got := CancellationFee(2, 100, 500, rule)
	if got.FeeAmount != 500 {
		t.Errorf("FeeAmount = %v, want 500 (clamped)", got.FeeAmount)
	}
	if got.RefundAmount != 0 {
		t.Errorf("RefundAmount = %v, want 0", got.RefundAmount)
	}
}

func TestCancellationFee_ClampsNegative(t *testing.T) {
	rule := FeeRule{FeeType: FeeTypeFixedAmount, FeeValue: -40}
	got := CancellationFee(5, 100, 500, rule)
	if got.FeeAmount != 0 || got.RefundAmount != 500 {
		t.Errorf("fee=%v refund=%v, want 0/500", got.FeeAmount, got.RefundAmount)
	}
}

func TestCancellationFee_NightsExceedingTotal(t *testing.T) {
	// 10 nights at 100 against a 500 total: clamp applies to the
	// nights model too.
	rule := FeeRule{FeeType: FeeTypeNights, FeeValue: 10}
	got := CancellationFee(1, 100, 500, rule)
	if got.FeeAmount != 500 || got.RefundAmount != 0 {
		t.Errorf("fee=%v refund=%v, want 500/0", got.FeeAmount, got.RefundAmount)
	}
}

func TestParseFeeType(t *testing.T) {
	cases := []struct {
		raw  string
		want FeeType
	}{
		{"percentage", FeeTypePercentage},
		{"PERCENTAGE", FeeTypePercentage},
		{" nights ", FeeTypeNights},
		{"fixed_amount", FeeTypeFixedAmount},
		{"flat", FeeTypeFixedAmount},
		{"", FeeTypeFixedAmount},
	}
	for _, tc := range cases {
		if got := ParseFeeType(tc.raw); got != tc.want {
			t.Errorf("ParseFeeType(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFeeRuleContains(t *testing.T) {
	r := FeeRule{DaysMin: 7, DaysMax: 29}
	for days, want := range map[int]bool{6: false, 7: true, 29: true, 30: false} {
		if got := r.Contains(days); got != want {
			t.Errorf("Contains(%d) = %v, want %v", days, got, want)
		}
	}
}
