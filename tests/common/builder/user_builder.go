//go:build unit || e2e

package builder

import (
	"time"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/usecase"

	"github.com/google/uuid"
)

type SessionBuilder struct {
	ID           uuid.UUID
	UserID       string
	Email        string
	DisplayName  string
	Role         user.Role
	BackendToken string
	CreatedAt    time.Time
	TTL          time.Duration
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		ID:           uuid.New(),
		UserID:       "user-1",
		Email:        "test@example.com",
		DisplayName:  "Test User",
		Role:         user.RoleCustomer,
		BackendToken: "backend-token",
		CreatedAt:    time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC),
		TTL:          time.Hour,
	}
}

func (s *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(s)
	return s
}

func (s *SessionBuilder) WithUserID(id string) *SessionBuilder {
	s.UserID = id
	return s
}

func (s *SessionBuilder) WithBackendToken(token string) *SessionBuilder {
	s.BackendToken = token
	return s
}

func (s *SessionBuilder) WithExpiry(createdAt time.Time, ttl time.Duration) *SessionBuilder {
	s.CreatedAt = createdAt
	s.TTL = ttl
	return s
}

func (s *SessionBuilder) BuildDomain() *user.Session {
	return user.ReconstructSession(s.ID, s.UserID, s.Email, s.DisplayName, s.Role, s.BackendToken, s.CreatedAt, s.CreatedAt.Add(s.TTL))
}

func (s *SessionBuilder) BuildProfile() *usecase.BackendProfile {
	return &usecase.BackendProfile{
		UserID:      s.UserID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		Role:        s.Role.String(),
	}
}
