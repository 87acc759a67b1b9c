package domain

import (
	"math/rand"
	"time"
)

// BackoffPolicy computes the wait between translation attempts:
// exponential growth from Initial, capped at Max, with a random jitter
// fraction applied to each delay. The zero value waits not at all,
// which is what tests want.
type BackoffPolicy struct {
	// Initial is the delay after the first failed attempt.
	Initial time.Duration

	// Max caps the grown delay.
	Max time.Duration

	// Multiplier is the per-attempt growth factor. Values below 1 are
	// treated as 1.
	Multiplier float64

	// Jitter is the fraction of the delay randomised in [-j, +j].
	// 0 disables jitter; values above 1 are clamped to 1.
	Jitter float64
}

// DefaultBackoffPolicy returns the policy used when configuration does
// not override it.
func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		Initial:    500 * time.Millisecond,
		Max:        30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.2,
	}
}

// Delay returns the wait before the next attempt, given the number of
// attempts already made (1 after the first failure).
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	if p.Initial <= 0 || attempt < 1 {
		return 0
	}

	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}

	d := float64(p.Initial)
	for i := 1; i < attempt; i++ {
		d *= mult
		if p.Max > 0 && d >= float64(p.Max) {
			d = float64(p.Max)
			break
		}
	}
	if p.Max > 0 && d > float64(p.Max) {
		d = float64(p.Max)
	}

	jitter := p.Jitter
	if jitter > 1 {
		jitter = 1
	}
	if jitter > 0 {
		// Uniform in [1-j, 1+j].
		d *= 1 + jitter*(2*rand.Float64()-1)
	}

	return time.Duration(d)
}
