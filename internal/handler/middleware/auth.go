package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/handler/httperr"
	"toy-rental-storefront/internal/pkg/cookie"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxSessionKey = "session"
	ctxClaimsKey  = "session_claims"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthenticated, "Session token required", nil)
			return
		}

		sess, err := m.tokenValidator.Authenticate(c.Request.Context(), token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired session", nil)
			return
		}

		SetSession(c, sess)
		c.Next()
	}
}

// OptionalAuth attaches the session when a valid token is present and never aborts.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		sess, err := m.tokenValidator.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		SetSession(c, sess)
		c.Next()
	}
}

// Cookie first, then the Authorization header.
func extractToken(c *gin.Context) string {
	if token := cookie.GetSessionToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// SetSession attaches an authenticated session to the request.
func SetSession(c *gin.Context, sess *user.Session) {
	c.Set(ctxSessionKey, sess)
	c.Set(ctxClaimsKey, map[string]any{
		"user_id":    sess.UserID(),
		"role":       sess.Role().String(),
		"session_id": sess.ID().String(),
	})
}

func GetSession(c *gin.Context) (*user.Session, bool) {
	v, exists := c.Get(ctxSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*user.Session)
	return sess, ok && sess != nil
}
