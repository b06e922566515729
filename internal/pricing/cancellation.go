package pricing

import (
	"math"
	"strings"
	"time"
)

// FeeType is the closed set of cancellation fee models. Raw strings
// coming out of storage are mapped into this set at the boundary by
// ParseFeeType so the fee computation can switch exhaustively instead
// of string-matching in the hot path.
type FeeType string

const (
	// FeeTypePercentage charges a percentage of the total booking price.
	FeeTypePercentage FeeType = "percentage"
	// FeeTypeNights charges N nights at the first night's rate. The
	// first night stands in for every night on purpose; it keeps the
	// rule cheap to evaluate and easy to explain to guests.
	FeeTypeNights FeeType = "nights"
	// FeeTypeFixedAmount charges a flat amount independent of the
	// booking size.
	FeeTypeFixedAmount FeeType = "fixed_amount"
)

// ParseFeeType maps a storage-level fee type tag into the closed
// FeeType set. Any tag that is neither percentage nor nights is
// treated as a fixed amount, so an unknown tag can never be silently
// ignored: it charges FeeValue directly, which is the most visible
// failure mode for misconfigured rules.
func ParseFeeType(raw string) FeeType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(FeeTypePercentage):
		return FeeTypePercentage
	case string(FeeTypeNights):
		return FeeTypeNights
	default:
		return FeeTypeFixedAmount
	}
}

// DaysMaxSentinel marks a rule window that extends indefinitely
// ("30 days or more before check-in").
const DaysMaxSentinel = 9999

// FeeRule is one tier of a hotel's cancellation policy: an inclusive
// [DaysMin, DaysMax] window of days-before-check-in and the fee model
// that applies inside it.
type FeeRule struct {
	DaysMin     int     `json:"days_before_checkin_min"`
	DaysMax     int     `json:"days_before_checkin_max"`
	FeeType     FeeType `json:"fee_type"`
	FeeValue    float64 `json:"fee_value"`
	Description string  `json:"description"`
}

// Contains reports whether the given days-before-check-in value falls
// inside the rule's inclusive window.
func (r FeeRule) Contains(days int) bool {
	return days >= r.DaysMin && days <= r.DaysMax
}

// FeeResult carries the computed cancellation fee together with the
// context a caller needs for display and audit: how many days before
// check-in the cancellation happened and which rule was applied.
type FeeResult struct {
	DaysBeforeCheckIn int     `json:"days_before_checkin"`
	FeeAmount         float64 `json:"fee_amount"`
	RefundAmount      float64 `json:"refund_amount"`
	Rule              FeeRule `json:"applied_rule"`
}

// DaysBeforeCheckIn returns the number of days between a cancellation
// and check-in, rounded up, so a cancellation 25 hours ahead counts as
// 2 days of notice. Cancelling on or after check-in yields a value
// less than or equal to zero.
func DaysBeforeCheckIn(checkIn, cancelledAt time.Time) int {
	return int(math.Ceil(checkIn.Sub(cancelledAt).Hours() / 24))
}

// ApplicableRule walks the rules in the order given and returns the
// first one whose window contains days. Callers are expected to
// supply rules sorted by DaysMin descending (longest-notice tiers
// first); with that ordering, overlapping windows resolve to the rule
// with the larger DaysMin. Hotel operators are expected to author
// non-overlapping windows, but when they do overlap the tie-break is
// strictly first match in the supplied order — changing that would
// change real refund amounts. The second return value is false when
// no window contains days; that is a distinct outcome the caller must
// surface, never a zero fee.
func ApplicableRule(days int, rules []FeeRule) (FeeRule, bool) {
	for _, r := range rules {
		if r.Contains(days) {
			return r, true
		}
	}
	return FeeRule{}, false
}

// CancellationFee computes the monetary fee under an already-resolved
// rule; it never re-resolves the rule itself. firstNightPrice feeds
// the nights model, totalBookingPrice feeds the percentage model and
// bounds the result. The fee is clamped to [0, totalBookingPrice]
// even for malformed rule data (negative values, percentages over
// 100), so the refund can never go negative and a guest can never owe
// more than they paid.
func CancellationFee(days int, firstNightPrice, totalBookingPrice float64, rule FeeRule) FeeResult {
	var fee float64
	switch rule.FeeType {
	case FeeTypePercentage:
		fee = totalBookingPrice * rule.FeeValue / 100
	case FeeTypeNights:
		fee = firstNightPrice * rule.FeeValue
	default:
		fee = rule.FeeValue
	}
	if fee < 0 {
		fee = 0
	}
	if fee > totalBookingPrice {
		fee = totalBookingPrice
	}
	return FeeResult{
		DaysBeforeCheckIn: days,
		FeeAmount:         fee,
		RefundAmount:      totalBookingPrice - fee,
		Rule:              rule,
	}
}
