package engine

import "math"

// Monetary arithmetic runs on integer cents. Prices arrive as float64 with at
// most two decimal places, but their binary representation can sit just below
// the decimal value (26.75 * 0.10 is stored as 2.6749999...), so rounding the
// float products directly breaks half-up ties. Converting to cents first
// keeps every intermediate value exact.

// cents converts a non-negative 2-decimal amount to integer cents, half-up.
func cents(v float64) int64 {
	return int64(math.Floor(v*100 + 0.5))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}

// taxCents applies rate to a subtotal in cents, rounding half-up.
func taxCents(subtotal int64, rate float64) int64 {
	return int64(math.Floor(float64(subtotal)*rate + 0.5))
}
