package middleware

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// RateLimitConfig configures the per-client limiter. A non-positive
// RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL drops limiters of clients not seen for this long.
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewRateLimiter creates a RateLimiter from cfg.
func NewRateLimiter(cfg RateLimitConfig, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Burst <= 0 {
		cfg.Burst = max(1, int(cfg.RequestsPerSecond))
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    cfg.Burst,
		ttl:      cfg.IdleTTL,
		now:      time.Now,
		logger:   logger,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Sweep removes limiters idle for longer than the configured TTL.
func (rl *RateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.ttl)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Middleware rejects clients over their budget with 429 and a Retry-After
// header. Idle clients are swept at most once per TTL.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	if rl.limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	retryAfter := strconv.Itoa(max(1, int(1/float64(rl.limit))))
	var lastSweep time.Time
	var sweepMu sync.Mutex

	return func(c *gin.Context) {
		sweepMu.Lock()
		if now := rl.now(); now.Sub(lastSweep) >= rl.ttl {
			lastSweep = now
			sweepMu.Unlock()
			rl.Sweep()
		} else {
			sweepMu.Unlock()
		}

		ip := c.ClientIP()
		if !rl.allow(ip) {
			rl.logger.WarnContext(c.Request.Context(), "rate limit exceeded",
				slog.String("client_ip", ip),
				slog.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", retryAfter)
			pkg.Abort(c, domain.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RateLimit returns a per-IP rate limiting middleware for cfg.
func RateLimit(cfg RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	return NewRateLimiter(cfg, logger).Middleware()
}
