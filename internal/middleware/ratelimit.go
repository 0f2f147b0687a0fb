package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/studiohub/api/internal/model"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int           // Requests granted per window (default 100)
	Window  time.Duration // Refill window (default 1 minute)
	Burst   int           // Extra headroom above rate (default 20)
	Cleanup time.Duration // Sweep interval for idle callers (default 5 minutes)
}

// allowance tracks one caller's remaining budget within the current window.
type allowance struct {
	tokens   int
	refillAt time.Time
}

// RateLimiter budgets requests per caller using a token bucket. Each caller
// starts with rate+burst tokens; tokens refill proportionally to elapsed
// time and fully once a whole window passes.
type RateLimiter struct {
	mu      sync.Mutex
	callers map[string]*allowance
	rate    int
	window  time.Duration
	burst   int
	sweep   time.Duration
	stop    chan struct{}
}

// NewRateLimiter creates a limiter and starts its idle-caller sweeper.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate == 0 {
		cfg.Rate = 100
	}
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst == 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		callers: make(map[string]*allowance),
		rate:    cfg.Rate,
		window:  cfg.Window,
		burst:   cfg.Burst,
		sweep:   cfg.Cleanup,
		stop:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop terminates the sweeper goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropIdle()
		case <-rl.stop:
			return
		}
	}
}

// dropIdle forgets callers that have been quiet for two full windows; their
// next request simply starts a fresh bucket.
func (rl *RateLimiter) dropIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-2 * rl.window)
	for key, a := range rl.callers {
		if a.refillAt.Before(cutoff) {
			delete(rl.callers, key)
		}
	}
}

// Allow consumes one token for key, reporting whether the request may
// proceed, how many tokens remain, and when the budget next refills.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, resetTime time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	a, seen := rl.callers[key]
	if !seen {
		a = &allowance{
			tokens:   rl.rate + rl.burst - 1, // This request spends one
			refillAt: now,
		}
		rl.callers[key] = a
		return true, a.tokens, now.Add(rl.window)
	}

	limit := rl.rate + rl.burst
	elapsed := now.Sub(a.refillAt)
	if elapsed >= rl.window {
		a.tokens = limit
		a.refillAt = now
	} else if granted := int(float64(rl.rate) * (float64(elapsed) / float64(rl.window))); granted > 0 {
		a.tokens += granted
		if a.tokens > limit {
			a.tokens = limit
		}
		a.refillAt = now
	}

	if a.tokens > 0 {
		a.tokens--
		return true, a.tokens, a.refillAt.Add(rl.window)
	}
	return false, 0, a.refillAt.Add(rl.window)
}

// RateLimit returns middleware that budgets requests per authenticated user,
// falling back to the remote address for anonymous callers. Rejections get a
// 429 ProblemDetails with Retry-After.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := GetUserID(r.Context())
			if key == "" {
				key = r.RemoteAddr
			}

			allowed, remaining, resetTime := limiter.Allow(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				retryAfter := int(time.Until(resetTime).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
