package services

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user, uploading the avatar and optional cover image.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// ChangePassword verifies the old password and stores a hash of the new one.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser resolves the user by username or email and checks the password.
	AuthenticateUser(ctx context.Context, req dto.LoginRequest) (*domain.User, error)
}

// UserViewSvc serves the aggregated user views.
type UserViewSvc interface {
	// GetChannelProfile returns the public channel profile of username as seen by requesterID.
	GetChannelProfile(ctx context.Context, username string, requesterID string) (*domain.ChannelProfile, error)

	// GetWatchHistory returns the user's watch history; never nil.
	GetWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
	UserViewSvc
}
