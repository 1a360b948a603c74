package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"wallet-screening/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const (
	HeaderCorrelationID      = "X-Correlation-ID"
	HeaderRequestID          = "X-Request-ID"
	HeaderAPIKey             = "X-API-Key"
	HeaderPayment            = "X-Payment"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"

	maxCorrelationIDLen = 128
)

// Correlation reuses a caller-supplied id or mints one, and echoes it on every response.
func Correlation() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sanitizeCorrelationID(c.GetHeader(HeaderCorrelationID))
		if id == "" {
			id = sanitizeCorrelationID(c.GetHeader(HeaderRequestID))
		}
		if id == "" {
			id = NewCorrelationID()
		}

		c.Set(httperr.CorrelationIDKey, id)
		c.Header(HeaderCorrelationID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// NewCorrelationID returns "<unix millis>-<8 hex>".
func NewCorrelationID() string {
	now := time.Now().UnixMilli()
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%d-fallback-%d", now, time.Now().UnixNano()%100000000)
	}
	return fmt.Sprintf("%d-%s", now, hex.EncodeToString(randomBytes))
}

func GetCorrelationID(c *gin.Context) string {
	return c.GetString(httperr.CorrelationIDKey)
}

// ExtractCredential reads the API key from X-API-Key, falling back to a Bearer token.
func ExtractCredential(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader(HeaderAPIKey)); key != "" {
		return key
	}
	return bearerToken(c)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func sanitizeCorrelationID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxCorrelationIDLen {
		return ""
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return id
}
