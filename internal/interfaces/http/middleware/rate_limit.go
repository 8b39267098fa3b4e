package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/your-org/storefront-client/internal/config"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	perMinute int
	burst     int

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimiter creates a limiter from the security configuration
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	perMinute := cfg.Security.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 120
	}
	burst := cfg.Security.RateLimitBurst
	if burst <= 0 {
		burst = perMinute
	}

	return &RateLimiter{
		perMinute: perMinute,
		burst:     burst,
		clients:   make(map[string]*clientLimiter),
	}
}

// RateLimit rejects clients that exceed their bucket
func (l *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := l.get(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.perMinute))
		if !limiter.Allow() {
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (l *RateLimiter) get(clientIP string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if client, ok := l.clients[clientIP]; ok {
		client.lastSeen = now
		return client.limiter
	}

	client := &clientLimiter{
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.burst),
		lastSeen: now,
	}
	l.clients[clientIP] = client
	l.gcLocked(now)

	return client.limiter
}

func (l *RateLimiter) gcLocked(now time.Time) {
	if len(l.clients) < 1000 {
		return
	}

	cutoff := now.Add(-10 * time.Minute)
	for ip, client := range l.clients {
		if client.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}
