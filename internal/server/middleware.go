package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const requestIDHeader = "X-Request-ID"

func generateSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("server: failed to generate salt: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashIP hashes a client address with the per-process salt so visitors can
// be told apart in logs without recording the address itself.
func hashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}

// requestIDMiddleware tags each request with a ULID, reusing an incoming
// X-Request-ID when a proxy already set one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func loggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", c.GetString("request_id"),
		)
	}
}

// recoveryMiddleware recovers from panics in handlers, logs the error,
// and returns a 500 response.
func recoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, v any) {
		logger.Error("panic recovered",
			"panic", v,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// visitorTrackingMiddleware logs page views with a hashed client IP. Static
// assets and fragments are skipped, and Do Not Track is honored. Nothing is stored.
func visitorTrackingMiddleware(logger *slog.Logger, salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || !isPageView(c.Request.URL.Path) {
			c.Next()
			return
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		logger.Info("page view",
			"visitor", hashIP(c.ClientIP(), salt),
			"path", c.Request.URL.Path,
			"user_agent", c.Request.UserAgent(),
		)
		c.Next()
	}
}

func isPageView(path string) bool {
	for _, prefix := range []string{"/static/", "/api/", "/portfolio", "/healthz", "/favicon"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}
