package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateEligibility(t *testing.T) {
	policy := DefaultResalePolicy()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	base := EligibilityInput{
		IsTransferable: true,
		EventTime:      now.Add(100 * time.Hour),
		Now:            now,
		Price:          decimal.NewFromInt(100),
		FaceValue:      decimal.NewFromInt(100),
	}

	t.Run("all checks pass", func(t *testing.T) {
		result := EvaluateEligibility(base, policy)

		assert.True(t, result.TransferableOk)
		assert.True(t, result.DateOk)
		assert.True(t, result.PriceOk)
		assert.True(t, result.Eligible)
	})

	t.Run("non-transferable ticket fails only that check", func(t *testing.T) {
		in := base
		in.IsTransferable = false

		result := EvaluateEligibility(in, policy)

		assert.False(t, result.TransferableOk)
		assert.True(t, result.DateOk)
		assert.True(t, result.PriceOk)
		assert.False(t, result.Eligible)
	})

	t.Run("lead time boundary", func(t *testing.T) {
		testCases := []struct {
			name   string
			lead   time.Duration
			dateOk bool
		}{
			{"exactly 72 hours passes", 72 * time.Hour, true},
			{"one second under 72 hours fails", 72*time.Hour - time.Second, false},
			{"one second over 72 hours passes", 72*time.Hour + time.Second, true},
			{"event in the past fails", -time.Hour, false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				in := base
				in.EventTime = now.Add(tc.lead)

				result := EvaluateEligibility(in, policy)

				assert.Equal(t, tc.dateOk, result.DateOk)
				assert.Equal(t, tc.dateOk, result.Eligible)
			})
		}
	})

	t.Run("price cap boundary", func(t *testing.T) {
		testCases := []struct {
			name    string
			price   string
			face    string
			priceOk bool
		}{
			{"price at face value passes", "100.00", "100.00", true},
			{"price exactly at cap passes", "120.00", "100.00", true},
			{"one cent over cap fails", "120.01", "100.00", false},
			{"free ticket passes", "0.00", "0.00", true},
			{"any price on a free ticket fails", "0.01", "0.00", false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				in := base
				in.Price = decimal.RequireFromString(tc.price)
				in.FaceValue = decimal.RequireFromString(tc.face)

				result := EvaluateEligibility(in, policy)

				assert.Equal(t, tc.priceOk, result.PriceOk)
				assert.Equal(t, tc.priceOk, result.Eligible)
			})
		}
	})

	t.Run("malformed input fails the check instead of panicking", func(t *testing.T) {
		t.Run("zero event time", func(t *testing.T) {
			in := base
			in.EventTime = time.Time{}

			result := EvaluateEligibility(in, policy)

			assert.False(t, result.DateOk)
			assert.True(t, result.PriceOk)
			assert.False(t, result.Eligible)
		})

		t.Run("negative price", func(t *testing.T) {
			in := base
			in.Price = decimal.NewFromInt(-1)

			result := EvaluateEligibility(in, policy)

			assert.False(t, result.PriceOk)
			assert.True(t, result.DateOk)
			assert.False(t, result.Eligible)
		})
	})

	t.Run("custom policy is honored", func(t *testing.T) {
		strict := ResalePolicy{
			ServiceFeeRate:     decimal.NewFromFloat(0.10),
			MinResaleLeadTime:  24 * time.Hour,
			PriceCapMultiplier: decimal.NewFromInt(1),
		}

		in := base
		in.EventTime = now.Add(25 * time.Hour)
		in.Price = decimal.NewFromInt(100)
		in.FaceValue = decimal.NewFromInt(100)

		result := EvaluateEligibility(in, strict)
		assert.True(t, result.Eligible)

		in.Price = decimal.RequireFromString("100.01")
		result = EvaluateEligibility(in, strict)
		assert.False(t, result.PriceOk)
	})
}
