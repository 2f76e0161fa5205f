package usecase

//go:generate mockgen -source=auth.go -destination=../../tests/mock/usecase/auth.go -package=usecasemock

import (
	"context"
	"errors"
	"log/slog"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/pkg/jwt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrSessionExpired       = errors.New("session expired")
)

type LoginResult struct {
	Token   string
	Session *user.Session
}

type AuthUseCase interface {
	Login(ctx context.Context, credentials user.Credentials) (*LoginResult, error)
	Logout(ctx context.Context, sess *user.Session) error
	Me(ctx context.Context, sess *user.Session) (*BackendProfile, error)
}

type authUseCaseImpl struct {
	auth       AuthService
	sessions   SessionStore
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthUseCase(auth AuthService, sessions SessionStore, jwtService *jwt.Service, clock clock.Clock) AuthUseCase {
	return &authUseCaseImpl{
		auth:       auth,
		sessions:   sessions,
		jwtService: jwtService,
		clock:      clock,
	}
}

// Login trades credentials for a backend token, keeps that token in the
// session store and hands the client a JWT that only names the session.
func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (*LoginResult, error) {
	backendToken, err := a.auth.Login(ctx, credentials)
	if err != nil {
		if errs.Is(err, errs.ErrUnauthenticated) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Wrap(err, "backend login")
	}

	profile, err := a.auth.Profile(ctx, backendToken)
	if err != nil {
		return nil, errs.Wrap(err, "load profile")
	}

	role, err := user.NewRole(profile.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	sess, err := user.NewSession(
		profile.UserID,
		profile.Email,
		profile.DisplayName,
		role,
		backendToken,
		a.clock.Now(),
		a.jwtService.TokenDuration(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := a.sessions.Save(ctx, sess); err != nil {
		return nil, errs.Wrap(err, "save session")
	}

	token, err := a.jwtService.GenerateToken(sess.ID(), sess.UserID(), role.String())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	slog.Info("user logged in", "user_id", sess.UserID(), "session_id", sess.ID())
	return &LoginResult{Token: token, Session: sess}, nil
}

func (a *authUseCaseImpl) Logout(ctx context.Context, sess *user.Session) error {
	if err := a.auth.Logout(ctx, sess.BackendToken()); err != nil {
		slog.Warn("backend logout failed", "user_id", sess.UserID(), "error", err.Error())
	}
	if err := a.sessions.Delete(ctx, sess.ID()); err != nil {
		return errs.Wrap(err, "delete session")
	}
	return nil
}

// Me asks the auth service for the current profile. A rejected backend token
// ends the storefront session too.
func (a *authUseCaseImpl) Me(ctx context.Context, sess *user.Session) (*BackendProfile, error) {
	profile, err := a.auth.Profile(ctx, sess.BackendToken())
	if err == nil {
		return profile, nil
	}
	if errs.Is(err, errs.ErrUnauthenticated) {
		if delErr := a.sessions.Delete(ctx, sess.ID()); delErr != nil {
			slog.Warn("delete stale session failed", "session_id", sess.ID(), "error", delErr.Error())
		}
		return nil, ErrSessionExpired
	}
	return nil, errs.Wrap(err, "load profile")
}
