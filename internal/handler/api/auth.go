package api

import (
	"errors"
	"net/http"

	reqdto "toy-rental-storefront/internal/handler/dto/request"
	resdto "toy-rental-storefront/internal/handler/dto/response"
	"toy-rental-storefront/internal/handler/httperr"
	"toy-rental-storefront/internal/pkg/config"
	"toy-rental-storefront/internal/pkg/cookie"
	"toy-rental-storefront/internal/pkg/jwt"
	"toy-rental-storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	jwtService  *jwt.Service
	cookieCfg   config.CookieConfig
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		jwtService:  jwtService,
		cookieCfg:   cfg.Cookie,
	}
}

// @Summary User login
// @Description Login with email and password; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		badRequest(c, err, "Invalid request data")
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), credentials)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
			return
		}
		respondError(c, err, nil)
		return
	}

	cookie.SetSessionCookie(c, h.cookieCfg, result.Token, h.jwtService.TokenDuration())
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.Token,
		User:        resdto.FromSession(result.Session),
	})
}

// @Summary User logout
// @Description Ends the storefront session and clears the cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), sess); err != nil {
		respondError(c, err, nil)
		return
	}

	cookie.ClearSessionCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Profile of the authenticated user as the auth service reports it
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.ProfileResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	profile, err := h.authUseCase.Me(c.Request.Context(), sess)
	if err != nil {
		if errors.Is(err, usecase.ErrSessionExpired) {
			cookie.ClearSessionCookie(c, h.cookieCfg)
		}
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromProfile(profile))
}
