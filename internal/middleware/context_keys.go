package middleware

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// identityKey is the key used to store the authenticated user in the request context.
const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the authenticated user.
func WithIdentity(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// GetIdentityFromContext retrieves the authenticated user attached by SessionMiddleware.
// The returned user never carries credentials.
func GetIdentityFromContext(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(identityKey).(domain.User)
	if !ok {
		return nil, false
	}
	return &user, true
}

// GetUserIDFromContext retrieves the authenticated user ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	user, ok := GetIdentityFromContext(c)
	if !ok {
		return "", false
	}
	return user.UserID, true
}
