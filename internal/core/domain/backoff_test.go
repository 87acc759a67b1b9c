package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffPolicy_ZeroValueNeverWaits(t *testing.T) {
	var p BackoffPolicy
	for attempt := 1; attempt <= 5; attempt++ {
		assert.Equal(t, time.Duration(0), p.Delay(attempt))
	}
}

func TestBackoffPolicy_ExponentialGrowth(t *testing.T) {
	p := BackoffPolicy{Initial: 100 * time.Millisecond, Max: time.Minute, Multiplier: 2}

	assert.Equal(t, 100*time.Millisecond, p.Delay(1))
	assert.Equal(t, 200*time.Millisecond, p.Delay(2))
	assert.Equal(t, 400*time.Millisecond, p.Delay(3))
}

func TestBackoffPolicy_CappedAtMax(t *testing.T) {
	p := BackoffPolicy{Initial: time.Second, Max: 4 * time.Second, Multiplier: 2}

	assert.Equal(t, 4*time.Second, p.Delay(10))
}

func TestBackoffPolicy_JitterStaysInBounds(t *testing.T) {
	p := DefaultBackoffPolicy()

	for attempt := 1; attempt <= 8; attempt++ {
		for i := 0; i < 50; i++ {
			d := p.Delay(attempt)
			assert.GreaterOrEqual(t, d, time.Duration(0))
			// Max plus full jitter is the hard ceiling
			limit := time.Duration(float64(p.Max) * (1 + p.Jitter))
			assert.LessOrEqual(t, d, limit)
		}
	}
}

func TestBackoffPolicy_InvalidAttempt(t *testing.T) {
	p := DefaultBackoffPolicy()
	assert.Equal(t, time.Duration(0), p.Delay(0))
	assert.Equal(t, time.Duration(0), p.Delay(-1))
}
