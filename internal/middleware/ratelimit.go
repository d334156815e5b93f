// Package middleware provides HTTP middleware for the pathfinder server.
package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxBuckets bounds the number of tracked client IPs.
const maxBuckets = 100_000

// RateLimiter is a per-IP token bucket limiter.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64 // tokens per second
	burst   float64
	now     func() time.Time
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// NewRateLimiter creates a RateLimiter allowing ratePerSec sustained requests
// with bursts up to burst. Stale buckets are evicted until ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    float64(ratePerSec),
		burst:   float64(burst),
		now:     time.Now,
	}
	go rl.cleanupLoop(ctx)

	return rl
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	const maxIdle = 10 * time.Minute

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if now.Sub(b.lastFill) > maxIdle {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// take consumes one token for ip. When the bucket is empty it returns the
// wait until the next token.
func (rl *RateLimiter) take(ip string) (ok bool, wait time.Duration, full bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	b, exists := rl.buckets[ip]
	if !exists {
		if len(rl.buckets) >= maxBuckets {
			return false, time.Second, true
		}
		b = &bucket{tokens: rl.burst, lastFill: now}
		rl.buckets[ip] = b
	}

	b.tokens = math.Min(rl.burst, b.tokens+now.Sub(b.lastFill).Seconds()*rl.rate)
	b.lastFill = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0, false
	}

	return false, time.Duration((1 - b.tokens) / rl.rate * float64(time.Second)), false
}

// Handler returns gin middleware that applies the limit per client IP.
// Trusted proxies are disabled on the engine, so ClientIP is the socket peer.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait, full := rl.take(c.ClientIP())
		if ok {
			c.Next()
			return
		}

		secs := int(math.Ceil(wait.Seconds()))
		c.Header("Retry-After", strconv.Itoa(max(secs, 1)))

		if full {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")
			return
		}

		respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
	}
}
