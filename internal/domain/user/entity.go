package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is the storefront's process-wide identity state for one login. It is
// created on login and destroyed on logout; everything that needs identity
// receives it explicitly instead of reading cookies or storage on its own.
type Session struct {
	id           uuid.UUID
	userID       string
	email        string
	displayName  string
	role         Role
	backendToken string
	createdAt    time.Time
	expiresAt    time.Time
}

func NewSession(userID, email, displayName string, role Role, backendToken string, now time.Time, ttl time.Duration) (*Session, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}
	if backendToken == "" {
		return nil, ErrMissingBackendToken
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &Session{
		id:           uuid.New(),
		userID:       userID,
		email:        email,
		displayName:  displayName,
		role:         role,
		backendToken: backendToken,
		createdAt:    now,
		expiresAt:    now.Add(ttl),
	}, nil
}

func ReconstructSession(id uuid.UUID, userID, email, displayName string, role Role, backendToken string, createdAt, expiresAt time.Time) *Session {
	return &Session{
		id:           id,
		userID:       userID,
		email:        email,
		displayName:  displayName,
		role:         role,
		backendToken: backendToken,
		createdAt:    createdAt,
		expiresAt:    expiresAt,
	}
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) UserID() string       { return s.userID }
func (s *Session) Email() string        { return s.email }
func (s *Session) DisplayName() string  { return s.displayName }
func (s *Session) Role() Role           { return s.role }
func (s *Session) BackendToken() string { return s.backendToken }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }
