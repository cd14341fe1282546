// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/hardwarehub/storefront-backend/internal/utils"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per key. What the key is comes from the
// middleware caller: anonymous catalog traffic buckets per client IP, admin
// upload traffic per authenticated subject.
type RateLimiter struct {
	mtx     sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   b,
	}

	go rl.evictIdle()

	return rl
}

func (rl *RateLimiter) evictIdle() {
	for {
		time.Sleep(time.Minute)
		rl.mtx.Lock()
		for key, b := range rl.buckets {
			if time.Since(b.lastSeen) > 3*time.Minute {
				delete(rl.buckets, key)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = time.Now()

	return b.limiter.Allow()
}

func (rl *RateLimiter) Middleware(key func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(key(c)) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// subjectKey buckets per authenticated account, so admins behind a shared
// office IP do not consume each other's quota. Requests without a subject
// fall back to the client IP.
func subjectKey(c *gin.Context) string {
	if subject, ok := utils.GetSubjectFromContext(c); ok && subject != "" {
		return "sub:" + subject
	}
	return "ip:" + c.ClientIP()
}

var (
	generalLimiter = NewRateLimiter(rate.Every(time.Second), 20) // 20 requests per second
	uploadLimiter  = NewRateLimiter(rate.Every(time.Minute), 10) // 10 uploads per minute
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.Middleware(clientIPKey)
}

// UploadRateLimit must run after AuthRequired so the subject is available.
func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.Middleware(subjectKey)
}
