package backend

import (
	"context"
	"net/http"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase"
)

type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

var _ usecase.AuthService = (*AuthService)(nil)

func (s *AuthService) Login(ctx context.Context, creds user.Credentials) (string, error) {
	var payload tokenPayload
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   []string{"auth", "login"},
		body: loginPayload{
			Email:    creds.Email().Value(),
			Password: creds.Password(),
		},
	}, &payload)
	if err != nil {
		return "", err
	}
	if payload.value() == "" {
		return "", errs.New("backend returned empty token")
	}
	return payload.value(), nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.client.do(ctx, request{
		method: http.MethodPost,
		path:   []string{"auth", "logout"},
		token:  token,
	}, nil)
}

func (s *AuthService) Profile(ctx context.Context, token string) (*usecase.BackendProfile, error) {
	var payload profilePayload
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"auth", "profile"},
		token:  token,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &usecase.BackendProfile{
		UserID:      payload.ID,
		Email:       payload.Email,
		DisplayName: payload.DisplayName,
		Role:        payload.Role,
	}, nil
}
