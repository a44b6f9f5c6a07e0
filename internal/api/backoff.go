package api

import (
	rand "math/rand/v2"
	"time"
)

// jitterBackoff computes the next retry delay ("full jitter" variant with a
// cap). Given the previous delay, the next one is base plus a random slice of
// the grown window, never exceeding capDur.
//
// Behavior:
//   - prev <= 0 starts from base
//   - mult < 1.0 falls back to 1.0 (no growth)
//   - capDur <= base returns capDur when set
func jitterBackoff(prev, base time.Duration, mult float64, capDur time.Duration) time.Duration {
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	if mult < 1.0 {
		mult = 1.0
	}
	if capDur > 0 && capDur < base {
		return capDur
	}

	if prev <= 0 {
		return base
	}

	window := time.Duration(float64(prev)*mult) - base
	if window <= 0 {
		window = base
	}

	next := base + time.Duration(rand.Int64N(int64(window))) //nolint:gosec // non-crypto backoff jitter
	if capDur > 0 && next > capDur {
		return capDur
	}

	return next
}
