package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/aiworkbench/internal/common"
	"github.com/dmitrijs2005/aiworkbench/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	claimsKey    = "claims"
	requestIDKey = "request_id"
)

func claimsFrom(c *gin.Context) *auth.Claims {
	return c.MustGet(claimsKey).(*auth.Claims)
}

// requestID echoes the caller's X-Request-ID or assigns a new one.
func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeader, id)
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetString(requestIDKey),
			"elapsed", time.Since(start))
	}
}

// accessTokenMiddleware admits requests carrying a valid, unrevoked bearer
// token and stores its claims in the context.
func (s *HTTPServer) accessTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeader)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			fail(c, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "token expired"
			}
			fail(c, http.StatusUnauthorized, msg)
			return
		}
		if s.revoked.IsRevoked(claims.ID) {
			fail(c, http.StatusUnauthorized, common.ErrTokenRevoked.Error())
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}
