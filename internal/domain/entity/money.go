package entity

import (
	"fmt"

	errs "github.com/amirhossein-jamali/ticket-marketplace/internal/domain/error"
	"github.com/shopspring/decimal"
)

// Monetary amounts are decimals with at most 2 decimal places. The service fee
// is rounded to 2 places on its own and then summed, so the displayed fee and
// total never drift by a cent.

// FeeBreakdown is the derived pricing of a purchase
type FeeBreakdown struct {
	Amount     decimal.Decimal // ticket price
	ServiceFee decimal.Decimal // round2(amount * feeRate)
	Total      decimal.Decimal // amount + serviceFee, never re-rounded
}

// ComputeFees derives the service fee and total for a ticket price.
// The fee is rounded half-up to 2 decimal places before summation.
func ComputeFees(amount decimal.Decimal, feeRate decimal.Decimal) FeeBreakdown {
	fee := amount.Mul(feeRate).Round(2)
	return FeeBreakdown{
		Amount:     amount,
		ServiceFee: fee,
		Total:      amount.Add(fee),
	}
}

// ValidateAmount checks that a monetary amount is non-negative with at most
// 2 decimal places
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: amount cannot be negative", errs.ErrInvalidAmount)
	}
	if amount.Exponent() < -2 {
		return fmt.Errorf("%w: maximum 2 decimal places allowed", errs.ErrInvalidAmount)
	}
	return nil
}

// ToMinorUnits converts a 2-decimal amount to integer minor units (cents),
// the representation the payment gateway consumes
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromMinorUnits converts gateway minor units back to a decimal amount
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
