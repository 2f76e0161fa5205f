//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/jwt"
	"toy-rental-storefront/internal/usecase"
	"toy-rental-storefront/tests/common/builder"
	usecasemock "toy-rental-storefront/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TokenValidatorTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockSessions *usecasemock.MockSessionStore
	jwtService   *jwt.Service
	clock        *clock.MockClock
	validator    usecase.TokenValidator
}

func (s *TokenValidatorTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessions = usecasemock.NewMockSessionStore(s.mockCtrl)
	s.jwtService = jwt.NewService("test-secret", time.Hour)
	s.clock = clock.NewMockClock(testNow)
	s.validator = usecase.NewTokenValidator(s.jwtService, s.mockSessions, s.clock)
}

func (s *TokenValidatorTestSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *TokenValidatorTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTokenValidatorSuite(t *testing.T) {
	suite.Run(t, new(TokenValidatorTestSuite))
}

func (s *TokenValidatorTestSuite) TestAuthenticate() {
	ctx := context.Background()
	sess := builder.NewSessionBuilder().BuildDomain()

	s.Run("success: resolves the session named by the token", func() {
		token, err := s.jwtService.GenerateToken(sess.ID(), sess.UserID(), sess.Role().String())
		s.Require().NoError(err)
		s.mockSessions.EXPECT().Find(gomock.Any(), sess.ID()).Return(sess, nil).Times(1)

		got, err := s.validator.Authenticate(ctx, token)

		s.Require().NoError(err)
		s.Equal(sess.ID(), got.ID())
	})

	s.Run("error: malformed token skips the session store", func() {
		_, err := s.validator.Authenticate(ctx, "not-a-jwt")

		s.ErrorIs(err, jwt.ErrInvalidToken)
	})

	s.Run("error: unknown session", func() {
		token, err := s.jwtService.GenerateToken(uuid.New(), "user-1", "customer")
		s.Require().NoError(err)
		s.mockSessions.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

		_, err = s.validator.Authenticate(ctx, token)

		s.ErrorIs(err, usecase.ErrSessionExpired)
	})

	s.Run("error: session past its expiry", func() {
		token, err := s.jwtService.GenerateToken(sess.ID(), sess.UserID(), sess.Role().String())
		s.Require().NoError(err)
		s.clock.Add(2 * time.Hour)
		s.mockSessions.EXPECT().Find(gomock.Any(), sess.ID()).Return(sess, nil).Times(1)

		_, err = s.validator.Authenticate(ctx, token)

		s.ErrorIs(err, usecase.ErrSessionExpired)
	})

	s.Run("error: session store failure", func() {
		token, err := s.jwtService.GenerateToken(sess.ID(), sess.UserID(), sess.Role().String())
		s.Require().NoError(err)
		s.mockSessions.EXPECT().Find(gomock.Any(), sess.ID()).Return(nil, errors.New("redis down")).Times(1)

		_, err = s.validator.Authenticate(ctx, token)

		s.Error(err)
		s.NotErrorIs(err, usecase.ErrSessionExpired)
	})
}
