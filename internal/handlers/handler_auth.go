package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration and the session lifecycle.
type authHandler struct {
	userService    portssvc.UserSvcFacade
	tokenService   portssvc.TokenSvcFacade
	maxUploadBytes int64
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:    us,
		tokenService:   ts,
		maxUploadBytes: uploadLimit(cfg),
	}
}

// registerAuthRoutes sets up the public and session routes under /users.
func registerAuthRoutes(users *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, rateLimit, session gin.HandlerFunc) {
	h := newAuthHandler(services.User, services.Token, cfg)

	users.POST("/register", rateLimit, h.register)
	users.POST("/login", rateLimit, h.login)
	users.POST("/refresh-token", h.refreshToken)
	users.POST("/logout", session, h.logout)
}

func setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	// session cookies: no max-age, HttpOnly and Secure
	c.SetCookie(middleware.AccessTokenCookie, accessToken, 0, "/", "", true, true)
	c.SetCookie(middleware.RefreshTokenCookie, refreshToken, 0, "/", "", true, true)
}

func clearSessionCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", true, true)
}

// register godoc
// @Summary Register new user
// @Description Creates a new user account. The avatar file is required, the cover image optional.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param fullname formData string true "Full name"
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.ApiResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Conflict (username or email exists)"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var req dto.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind register form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid registration form"))
		return
	}

	avatar, closeAvatar, err := formFile(c, "avatar")
	if err != nil {
		respondError(c, err, "failed to read avatar")
		return
	}
	defer closeAvatar()
	cover, closeCover, err := formFile(c, "coverImage")
	if err != nil {
		respondError(c, err, "failed to read cover image")
		return
	}
	defer closeCover()
	req.Avatar = avatar
	req.CoverImage = cover

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Something went wrong while registering the user")
		return
	}

	respondOK(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

// login godoc
// @Summary User login
// @Description Authenticates with username or email and password. Sets the accessToken and refreshToken cookies.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.ApiResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /users/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to log in")
		return
	}

	pair, err := h.tokenService.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Something went wrong while generating tokens")
		return
	}

	setSessionCookies(c, pair.AccessToken, pair.RefreshToken)
	respondOK(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// logout godoc
// @Summary Log out
// @Description Clears the stored refresh token and both session cookies.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ApiResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), user.UserID); err != nil {
		respondError(c, err, "failed to log out")
		return
	}

	clearSessionCookies(c)
	respondOK(c, http.StatusOK, gin.H{}, "User logged out")
}

// refreshToken godoc
// @Summary Refresh the session
// @Description Exchanges the current refresh token (cookie or body) for a new token pair. A superseded token is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest false "Refresh token for clients without cookies"
// @Success 200 {object} dto.ApiResponse{data=dto.RefreshTokenResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/refresh-token [post]
func (h *authHandler) refreshToken(c *gin.Context) {
	presented, _ := c.Cookie(middleware.RefreshTokenCookie)
	if presented == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
			return
		}
		presented = req.RefreshToken
	}

	pair, err := h.tokenService.RotateRefreshToken(c.Request.Context(), presented)
	if err != nil {
		respondError(c, err, "failed to refresh access token")
		return
	}

	setSessionCookies(c, pair.AccessToken, pair.RefreshToken)
	respondOK(c, http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}
