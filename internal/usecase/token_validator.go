package usecase

//go:generate mockgen -source=token_validator.go -destination=../../tests/mock/usecase/token_validator.go -package=usecasemock

import (
	"context"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/pkg/jwt"
)

// TokenValidator resolves a storefront JWT to its live session for middleware.
type TokenValidator interface {
	Authenticate(ctx context.Context, tokenString string) (*user.Session, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	sessions   SessionStore
	clock      clock.Clock
}

func NewTokenValidator(jwtService *jwt.Service, sessions SessionStore, clock clock.Clock) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		sessions:   sessions,
		clock:      clock,
	}
}

func (t *tokenValidatorImpl) Authenticate(ctx context.Context, tokenString string) (*user.Session, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	sess, err := t.sessions.Find(ctx, claims.SessionID)
	if err != nil {
		return nil, errs.Wrap(err, "find session")
	}
	if sess == nil || sess.IsExpired(t.clock.Now()) {
		return nil, ErrSessionExpired
	}
	return sess, nil
}
