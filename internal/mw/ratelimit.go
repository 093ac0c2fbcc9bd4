package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter hands out one token bucket per client key. A bucket left
// unused for the idle period is evicted.
type KeyedRateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	r        rate.Limit
	b        int
	idle     time.Duration
}

// NewKeyedRateLimiter creates a new KeyedRateLimiter.
func NewKeyedRateLimiter(r rate.Limit, b int, idle time.Duration) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: cache.New(idle, idle),
		r:        r,
		b:        b,
		idle:     idle,
	}
}

// GetLimiter returns the rate limiter for a key and restarts its idle timer.
func (k *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	limiter, found := k.limiters.Get(key)
	if !found {
		limiter = rate.NewLimiter(k.r, k.b)
	}
	k.limiters.Set(key, limiter, k.idle)
	return limiter.(*rate.Limiter)
}

// Len reports how many buckets are live.
func (k *KeyedRateLimiter) Len() int {
	return k.limiters.ItemCount()
}

// RateLimiter limits requests per client IP. The caller header is not
// authenticated, so it plays no part in the key.
func RateLimiter(r rate.Limit, b int, idle time.Duration) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b, idle)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
