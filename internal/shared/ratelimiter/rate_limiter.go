// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	// Wait は次の呼び出しが許可されるまで待機します。ctx がキャンセルされた場合はエラーを返します。
	Wait(ctx context.Context) error
}

// RateLimiter は、トークンバケット方式で操作の頻度を制限します。
type RateLimiter struct {
	limiter  *rate.Limiter
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
}

// NewRateLimiter は interval あたり limit 回までの呼び出しを許可する RateLimiter を生成します。
// バーストは limit まで許可されます。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{
		limiter:  rate.NewLimiter(every, limit),
		limit:    limit,
		interval: interval,
	}
}

// Wait はレートリミットの上限に達しているかを確認し、必要であれば待機します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limiter.Tokens() < 1 {
		slog.Debug("rate limit reached, waiting", "limit", rl.limit, "interval", rl.interval)
	}
	return rl.limiter.Wait(ctx)
}

// Unlimited は待機しない RateLimiterInterface 実装です。テストやローカル開発で使用します。
type Unlimited struct{}

// Wait は ctx が既に終了している場合のみエラーを返します。
func (Unlimited) Wait(ctx context.Context) error {
	return ctx.Err()
}
