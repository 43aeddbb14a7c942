package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByLogin retrieves the user matching the username or the email.
	// Empty arguments are ignored; ErrNotFound when nothing matches.
	FindUserByLogin(ctx context.Context, username, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns ErrDuplicate if the username or email is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error
}

// UserTokenStore manages the single refresh token slot of a user.
type UserTokenStore interface {
	// UpdateRefreshToken overwrites the refresh token slot.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken empties the refresh token slot.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserViewReader builds the derived, read-only user views.
type UserViewReader interface {
	// FindChannelProfile returns the channel profile of username as seen by requesterID.
	FindChannelProfile(ctx context.Context, username string, requesterID string) (*domain.ChannelProfile, error)

	// FindWatchHistory resolves the user's watch history in stored order.
	FindWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserTokenStore
	UserViewReader
}
