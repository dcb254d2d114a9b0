package booking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBreakdown_NoDiscount(t *testing.T) {
	b, err := ComputeBreakdown(10000, 0)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, b.OriginalAmount)
	assert.Equal(t, 10000.0, b.DiscountedAmount)
	assert.Equal(t, 2500.0, b.DepositAmount)
	assert.Equal(t, 7500.0, b.RemainingAmount)
}

func TestComputeBreakdown_WithDiscount(t *testing.T) {
	b, err := ComputeBreakdown(10000, 1500)
	require.NoError(t, err)

	assert.Equal(t, 8500.0, b.DiscountedAmount)
	assert.Equal(t, 2125.0, b.DepositAmount)
	assert.Equal(t, 6375.0, b.RemainingAmount)
}

func TestComputeBreakdown_DiscountLargerThanPrice(t *testing.T) {
	b, err := ComputeBreakdown(5000, 8000)
	require.NoError(t, err)

	assert.Equal(t, 0.0, b.DiscountedAmount)
	assert.Equal(t, 0.0, b.DepositAmount)
	assert.Equal(t, 0.0, b.RemainingAmount)
}

func TestComputeBreakdown_DepositPlusRemainingEqualsDiscounted(t *testing.T) {
	prices := []float64{1, 99.99, 3500, 10000, 123456.78}
	discounts := []float64{0, 0.01, 500, 2500.50}

	for _, price := range prices {
		for _, discount := range discounts {
			b, err := ComputeBreakdown(price, discount)
			require.NoError(t, err)

			assert.InDelta(t, b.DiscountedAmount, b.DepositAmount+b.RemainingAmount, 0.01)
			assert.InDelta(t, b.DiscountedAmount*DepositRate, b.DepositAmount, 0.01)
			assert.GreaterOrEqual(t, b.DiscountedAmount, 0.0)
			assert.Equal(t, math.Max(0, price-discount), b.DiscountedAmount)
		}
	}
}

func TestComputeBreakdown_InvalidInputs(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
	}{
		{"zero price", 0, 0},
		{"negative price", -100, 0},
		{"negative discount", 1000, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBreakdown(tt.price, tt.discount)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}
