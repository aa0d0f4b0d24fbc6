package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCents(t *testing.T) {
	assert.Equal(t, int64(1299), cents(12.99))
	assert.Equal(t, int64(950), cents(9.50))
	assert.Equal(t, int64(2675), cents(26.75))
	assert.Equal(t, int64(0), cents(0))
	assert.InDelta(t, 12.99, fromCents(1299), 1e-9)
}

func TestTaxCentsHalfUp(t *testing.T) {
	// 5097 * 0.10 = 509.7 → 510
	assert.Equal(t, int64(510), taxCents(5097, 0.10))
	// 2675 * 0.10 = 267.5, a tie: half-up gives 268 even though the float64
	// product sits a hair above or below the exact value.
	assert.Equal(t, int64(268), taxCents(2675, 0.10))
	assert.Equal(t, int64(509), taxCents(5094, 0.10))
	assert.Equal(t, int64(0), taxCents(0, 0.10))
}
