package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// LocalLimiter is an in-process fixed-window limiter keyed by client IP.
// It guards the admin API, which must stay protected when redis is down.
type LocalLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	max     int
	window  time.Duration
	now     func() time.Time
}

func NewLocalLimiter(maxRequests int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		clients: make(map[string]*clientInfo),
		max:     maxRequests,
		window:  window,
		now:     time.Now,
	}
}

// Allow counts one request for ip and reports whether it fits the window.
func (l *LocalLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	ci, ok := l.clients[ip]
	if !ok || now.Sub(ci.start) > l.window {
		if len(l.clients) > 10000 {
			l.sweep(now)
		}
		l.clients[ip] = &clientInfo{start: now, count: 1}
		return true
	}
	ci.count++
	return ci.count <= l.max
}

// sweep drops expired windows. Caller holds mu.
func (l *LocalLimiter) sweep(now time.Time) {
	for ip, ci := range l.clients {
		if now.Sub(ci.start) > l.window {
			delete(l.clients, ip)
		}
	}
}

// Middleware blocks clients that send more than max requests per window
func (l *LocalLimiter) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			RLBlocked.WithLabelValues(scope).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(scope).Inc()
		c.Next()
	}
}
