package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/metrics"
	"github.com/SscSPs/vidtube_backend/internal/utils"
)

// tokenService issues, verifies and rotates session tokens. The refresh token of a
// user lives in a single slot on the user row; only its hash is stored.
type tokenService struct {
	BaseService
	cfg      domain.TokenConfig
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg domain.TokenConfig, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (s *tokenService) IssueTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, accessExpiry, err := utils.GenerateAccessJWT(
		user.UserID, user.Email, user.Username, user.FullName,
		s.cfg.AccessSecret, s.cfg.AccessExpiry, s.cfg.Issuer,
	)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to generate access token", err)
	}

	refreshToken, refreshExpiry, err := utils.GenerateRefreshJWT(user.UserID, s.cfg.RefreshSecret, s.cfg.RefreshExpiry, s.cfg.Issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign refresh token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to generate refresh token", err)
	}

	// overwrites any previously stored token; the last writer wins
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to persist refresh token", err)
	}

	return &domain.TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

func (s *tokenService) VerifyAccessToken(ctx context.Context, token string) (*domain.AccessClaims, error) {
	claims, err := utils.ParseAccessJWT(token, s.cfg.AccessSecret)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid access token", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err))
	}
	return &domain.AccessClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Username:  claims.Username,
		FullName:  claims.FullName,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *tokenService) RotateRefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.Unauthorizedf("unauthorized request")
	}

	claims, err := utils.ParseRefreshJWT(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		s.LogDebug(ctx, "Refresh token rejected", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid refresh token", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err))
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorizedf("invalid refresh token")
		}
		s.LogError(ctx, err, "Failed to load refresh token subject", slog.String("user_id", claims.Subject))
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	storedHash := ""
	if user.HasRefreshToken() {
		storedHash = *user.RefreshTokenHash
	}
	if !utils.CompareRefreshTokenHash(refreshToken, storedHash) {
		s.LogSecurityEvent(ctx, "refresh_token_reuse", "Superseded refresh token presented",
			slog.String("user_id", user.UserID),
			slog.String("token_id", claims.ID),
		)
		metrics.RecordAuthEvent(metrics.AuthEventRefreshReused)
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "refresh token is expired or used", apperrors.ErrTokenReuse)
	}
	if user.RefreshTokenExpiryTime != nil && time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.Unauthorizedf("refresh token is expired or used")
	}

	pair, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.RecordAuthEvent(metrics.AuthEventRefresh)
	return pair, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	metrics.RecordAuthEvent(metrics.AuthEventLogout)
	return nil
}
