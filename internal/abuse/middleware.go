package abuse

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware applies the shared per-IP window, with the stricter
// write ceiling for anything that is not a GET. Store errors fail open: the
// limiter is a deterrent, not a correctness control.
func RateLimitMiddleware(l *Limiter, writeMax int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		max := l.MaxRequests
		if c.Request.Method != http.MethodGet {
			max = writeMax
		}

		decision, err := l.Allow(c.Request.Context(), c.ClientIP(), max)
		if err != nil {
			if logger != nil {
				logger.Warn("rate limit store error", zap.Error(err))
			}
			c.Next()
			return
		}
		if decision.Allowed {
			c.Next()
			return
		}

		seconds := int(decision.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
		message := "rate limit exceeded"
		if decision.Blocked {
			message = "too many requests, try again later"
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"code":    http.StatusTooManyRequests,
			"message": message,
		})
	}
}

// BodyLimitMiddleware rejects oversized bodies. Declared lengths are refused
// up front; chunked bodies are capped by MaxBytesReader and surface at bind
// time, where handlers map them to the same 413.
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"code":    http.StatusRequestEntityTooLarge,
				"message": "request body too large",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UserAgentMiddleware rejects obviously automated clients on write
// endpoints. Honeypot and timing checks live in the handlers, where the
// parsed body is available.
func UserAgentMiddleware(checker *BotChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		sub := Submission{UserAgent: c.Request.UserAgent()}
		if err := checker.Check(sub, time.Now()); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "request rejected",
			})
			return
		}
		c.Next()
	}
}
