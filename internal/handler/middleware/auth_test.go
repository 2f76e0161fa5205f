//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/handler/middleware"
	"toy-rental-storefront/internal/pkg/cookie"
	"toy-rental-storefront/internal/usecase"
	"toy-rental-storefront/tests/common/builder"
	"toy-rental-storefront/tests/common/httptest"
	usecasemock "toy-rental-storefront/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockValidator *usecasemock.MockTokenValidator
	sess          *user.Session
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)
	s.sess = builder.NewSessionBuilder().BuildDomain()

	m := middleware.NewAuthMiddleware(s.mockValidator)
	echoUser := func(c *gin.Context) {
		sess, ok := middleware.GetSession(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"userId": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": sess.UserID()})
	}
	s.router.GET("/private", m.RequireAuth(), echoUser)
	s.router.GET("/public", m.OptionalAuth(), echoUser)
}

func (s *AuthMiddlewareTestSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

type userIDBody struct {
	UserID string `json:"userId"`
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("success: bearer token", func() {
		s.mockValidator.EXPECT().Authenticate(gomock.Any(), "bearer-token").Return(s.sess, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, "bearer-token")

		var body userIDBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.sess.UserID(), body.UserID)
	})

	s.Run("success: cookie wins over the header", func() {
		s.mockValidator.EXPECT().Authenticate(gomock.Any(), "cookie-token").Return(s.sess, nil).Times(1)

		cookies := []*http.Cookie{{Name: cookie.SessionCookieName, Value: "cookie-token"}}
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/private", nil, cookies, "bearer-token")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Session token required")
	})

	s.Run("error: 401 when the session is gone", func() {
		s.mockValidator.EXPECT().Authenticate(gomock.Any(), "stale").Return(nil, usecase.ErrSessionExpired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, "stale")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired session")
	})
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuth() {
	s.Run("anonymous passes through", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public", nil, "")

		var body userIDBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.UserID)
	})

	s.Run("valid token attaches the session", func() {
		s.mockValidator.EXPECT().Authenticate(gomock.Any(), "good").Return(s.sess, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public", nil, "good")

		var body userIDBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.sess.UserID(), body.UserID)
	})

	s.Run("invalid token is treated as anonymous", func() {
		s.mockValidator.EXPECT().Authenticate(gomock.Any(), "bad").Return(nil, errors.New("token is malformed")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public", nil, "bad")

		var body userIDBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.UserID)
	})
}
