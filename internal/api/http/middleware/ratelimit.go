package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit enforces a per-client token bucket keyed by remote IP.
// Idle buckets are dropped after an hour to bound memory.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	type bucket struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var mu sync.Mutex
	buckets := make(map[string]*bucket)

	cleanup := func(now time.Time) {
		for ip, b := range buckets {
			if now.Sub(b.lastSeen) > time.Hour {
				delete(buckets, ip)
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			b = &bucket{limiter: rate.NewLimiter(rps, burst)}
			buckets[ip] = b
			if len(buckets)%256 == 0 {
				cleanup(now)
			}
		}
		b.lastSeen = now
		mu.Unlock()

		if !b.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
