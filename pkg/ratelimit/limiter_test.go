package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateAllowsBurst(t *testing.T) {
	r := NewRate(2, time.Hour)

	assert.True(t, r.Allow())
	assert.True(t, r.Allow())
	assert.False(t, r.Allow())
}

func TestRateDelay(t *testing.T) {
	r := NewRate(1, time.Hour)
	assert.Zero(t, r.Delay())

	require.True(t, r.Allow())
	d := r.Delay()
	assert.Greater(t, d, 59*time.Minute)
	assert.LessOrEqual(t, d, time.Hour)
}

func TestRateWait(t *testing.T) {
	r := NewRate(1, 20*time.Millisecond)
	require.NoError(t, r.Wait(context.Background()))

	start := time.Now()
	require.NoError(t, r.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestRateWaitCancelled(t *testing.T) {
	r := NewRate(1, time.Hour)
	require.True(t, r.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestPerMinute(t *testing.T) {
	assert.IsType(t, Unlimited{}, PerMinute(0))
	assert.IsType(t, &Rate{}, PerMinute(60))

	u := Unlimited{}
	for i := 0; i < 100; i++ {
		assert.True(t, u.Allow())
	}
	assert.Zero(t, u.Delay())
	assert.NoError(t, u.Wait(context.Background()))
}
