package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Reserve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 1, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(60, time.Minute)
	rl.now = func() time.Time { return now }

	assert.Zero(t, rl.reserve())
	assert.Equal(t, time.Second, rl.reserve())
	assert.Equal(t, 2*time.Second, rl.reserve())

	// 間が空いたら待ちなし
	now = now.Add(10 * time.Second)
	assert.Zero(t, rl.reserve())
	assert.Equal(t, time.Second, rl.reserve())
}

func TestNewRateLimiter_NonPositiveLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Minute, NewRateLimiter(0, time.Minute).gap)
	assert.Equal(t, time.Minute, NewRateLimiter(-5, time.Minute).gap)
}

func TestRateLimiter_SpacesCalls(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 40*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(ctx))
	}
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(100, time.Second)
	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rl.Wait(context.Background()))
		}()
	}
	wg.Wait()
	// 5回目は4枠ぶん (40ms) 後
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestRateLimiter_ContextCancel(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Hour)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
}
