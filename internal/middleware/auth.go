package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// Cookie names of the session tokens.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

const (
	msgAccessTokenRequired = "access token required"
	msgInvalidAccessToken  = "invalid access token"
)

// SessionMiddleware authenticates the request with the access token from the
// accessToken cookie or, failing that, the Authorization bearer header, and
// attaches the resolved user to the request context.
func SessionMiddleware(tokenSvc portssvc.TokenSvcFacade, users portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		token := extractAccessToken(c)
		if token == "" {
			logger.Debug("Access token missing")
			abortUnauthorized(c, msgAccessTokenRequired)
			return
		}

		claims, err := tokenSvc.VerifyAccessToken(ctx, token)
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			abortUnauthorized(c, msgInvalidAccessToken)
			return
		}

		user, err := users.GetUserByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Access token subject no longer exists", slog.String("user_id", claims.UserID))
			} else {
				logger.Error("Failed to resolve access token subject", slog.String("user_id", claims.UserID), slog.String("error", err.Error()))
			}
			abortUnauthorized(c, msgInvalidAccessToken)
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx = WithIdentity(ctx, user.WithoutCredentials())
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}
