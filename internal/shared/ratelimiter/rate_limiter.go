// Package ratelimiter は上流API呼び出しの間隔を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は呼び出し前に枠が空くまで待つインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval あたり limit 回を均等な間隔で許可します。
// 待っている呼び出しは到着順に枠を予約するので、並行に呼んでも間隔は保たれます。
type RateLimiter struct {
	mu   sync.Mutex
	gap  time.Duration
	next time.Time // 次に空く時刻
	now  func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は interval/limit 間隔のRateLimiterを返します。limitが0以下なら1です。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RateLimiter{gap: interval / time.Duration(limit), now: time.Now}
}

// Wait は予約した枠の時刻まで待ちます。
// 待機中にctxが終わった場合はctx.Err()を返し、その枠は使われずに捨てられます。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	d := rl.reserve()
	if d <= 0 {
		return nil
	}
	slog.DebugContext(ctx, "rate limited", "wait", d)

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if rl.next.Before(now) {
		rl.next = now
	}
	wait := rl.next.Sub(now)
	rl.next = rl.next.Add(rl.gap)
	return wait
}
