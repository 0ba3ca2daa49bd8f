package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResalePolicy holds the configurable marketplace policy knobs. All three are
// injected from configuration, never hardcoded at call sites.
type ResalePolicy struct {
	// ServiceFeeRate is the fraction of the ticket price charged to the buyer
	ServiceFeeRate decimal.Decimal
	// MinResaleLeadTime is the minimum time before the event a ticket may be resold
	MinResaleLeadTime time.Duration
	// PriceCapMultiplier bounds the resale price relative to face value
	PriceCapMultiplier decimal.Decimal
}

// DefaultResalePolicy returns the standard marketplace policy: 10% service fee,
// 72 hour lead time, 1.2x price cap.
func DefaultResalePolicy() ResalePolicy {
	return ResalePolicy{
		ServiceFeeRate:     decimal.NewFromFloat(0.10),
		MinResaleLeadTime:  72 * time.Hour,
		PriceCapMultiplier: decimal.NewFromFloat(1.2),
	}
}

// EligibilityInput is the full input to the resale eligibility decision
type EligibilityInput struct {
	IsTransferable bool
	EventTime      time.Time
	Now            time.Time
	Price          decimal.Decimal
	FaceValue      decimal.Decimal
}

// EligibilityResult carries the overall decision plus the three contributing
// checks so the caller can report which rule failed
type EligibilityResult struct {
	TransferableOk bool `json:"transferableOk"`
	DateOk         bool `json:"dateOk"`
	PriceOk        bool `json:"priceOk"`
	Eligible       bool `json:"eligible"`
}

// EvaluateEligibility decides whether a candidate listing may be published.
// It is pure and total: malformed inputs (zero event time, negative prices)
// fail the corresponding check rather than aborting the evaluation, so the
// caller always receives a complete result.
//
// Client-side eligibility results are advisory only; this function is the
// authoritative server-side evaluation at creation time.
func EvaluateEligibility(in EligibilityInput, policy ResalePolicy) EligibilityResult {
	result := EligibilityResult{
		TransferableOk: in.IsTransferable,
	}

	// Lead time check: the exact threshold, not rounded. A zero event time or
	// zero clock means the date could not be parsed and fails the check.
	if !in.EventTime.IsZero() && !in.Now.IsZero() {
		result.DateOk = in.EventTime.Sub(in.Now) >= policy.MinResaleLeadTime
	}

	// Price cap check: price <= faceValue * multiplier, inclusive upper bound.
	// Negative values are malformed input and fail the check.
	if in.Price.Sign() >= 0 && in.FaceValue.Sign() >= 0 {
		priceCap := in.FaceValue.Mul(policy.PriceCapMultiplier)
		result.PriceOk = in.Price.LessThanOrEqual(priceCap)
	}

	result.Eligible = result.TransferableOk && result.DateOk && result.PriceOk
	return result
}
