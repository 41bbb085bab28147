package restapi

import (
	"net/http"
	"time"

	"holo_vault_analyzer/internal/infrastructure/session"
	"holo_vault_analyzer/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "holo_session"

	sessionContextKey = "holo.session"
)

// RequestLogger logs one line per request through zap.
func RequestLogger(z *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			z.Warn("HTTP request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		z.Info("HTTP request", fields...)
	}
}

// RequestMetrics records request counts and latencies by route template.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Sessions attaches the caller's session, taken from the X-Session-ID header
// or the holo_session cookie. Unknown or missing ids start a new session.
func Sessions(store *session.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}
		sess, created := store.GetOrCreate(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.ID, int(ttl.Seconds()), "/", "", false, true)
		}
		c.Header(SessionHeader, sess.ID)
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}
