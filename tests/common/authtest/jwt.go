//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/config"
	"toy-rental-storefront/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken signs a token for sess. The session itself must already be
// in the session store for middleware to accept it.
func (h *JWTHelper) GenerateToken(t *testing.T, sess *user.Session) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(sess.ID(), sess.UserID(), sess.Role().String())
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, sess *user.Session) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(sess.ID(), sess.UserID(), sess.Role().String())
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
