package services

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// IssueTokenPair creates an access and a refresh token for the user and stores the
	// refresh token in the user's single slot, replacing any previous one.
	IssueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error)

	// VerifyAccessToken checks signature, type and expiry of an access token.
	VerifyAccessToken(ctx context.Context, token string) (*domain.AccessClaims, error)

	// RotateRefreshToken exchanges the currently stored refresh token for a new pair.
	// A token that verifies but is not the stored one yields apperrors.ErrTokenReuse.
	RotateRefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)

	// RevokeRefreshToken empties the user's refresh token slot.
	RevokeRefreshToken(ctx context.Context, userID string) error
}
