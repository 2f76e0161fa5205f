package response

import (
	"time"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/usecase"
)

type SessionUserResponse struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type LoginResponse struct {
	AccessToken string              `json:"access_token"`
	User        SessionUserResponse `json:"user"`
}

type ProfileResponse struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func FromSession(s *user.Session) SessionUserResponse {
	return SessionUserResponse{
		UserID:      s.UserID(),
		Email:       s.Email(),
		DisplayName: s.DisplayName(),
		Role:        s.Role().String(),
		ExpiresAt:   s.ExpiresAt(),
	}
}

func FromProfile(p *usecase.BackendProfile) ProfileResponse {
	return ProfileResponse{
		UserID:      p.UserID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        p.Role,
	}
}
