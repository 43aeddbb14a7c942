package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/metrics"
	"github.com/SscSPs/vidtube_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	media    portssvc.MediaStore
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, media portssvc.MediaStore) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		media:    media,
	}
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.FullName == "" || req.Email == "" || req.Username == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apperrors.Validationf("All fields are required")
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindUserByLogin(ctx, req.Username, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewAppError(http.StatusConflict, "User with email or username already exists", apperrors.ErrDuplicate)
	}

	if req.Avatar == nil {
		return nil, apperrors.Validationf("Avatar file is required")
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	userID := uuid.NewString()
	avatar, err := uploadMedia(ctx, s.media, mediaAvatar, userID, req.Avatar)
	if err != nil {
		s.LogError(ctx, err, "Avatar upload failed", slog.String("user_id", userID))
		return nil, apperrors.NewAppError(http.StatusBadRequest, "Avatar file is required", err)
	}

	var coverImage *string
	if req.CoverImage != nil {
		cover, err := uploadMedia(ctx, s.media, mediaCover, userID, req.CoverImage)
		if err != nil {
			// the cover image is optional; registration goes on without it
			s.LogWarn(ctx, "Cover image upload failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		} else {
			coverImage = &cover.URL
		}
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       userID,
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Avatar:       avatar.URL,
		CoverImage:   coverImage,
		PasswordHash: passwordHash,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusConflict, "User with email or username already exists", err)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID), slog.String("username", user.Username))
	sanitized := user.WithoutCredentials()
	return &sanitized, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, apperrors.Validationf("username or email is required")
	}
	if req.Password == "" {
		return nil, apperrors.Validationf("password is required")
	}

	user, err := s.userRepo.FindUserByLogin(ctx, username, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusNotFound, "User does not exist", err)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		metrics.RecordAuthEvent(metrics.AuthEventLoginFailed)
		s.LogSecurityEvent(ctx, "login_failed", "Invalid login attempt", slog.String("user_id", user.UserID))
		return nil, apperrors.Unauthorizedf("Invalid user credentials")
	}

	metrics.RecordAuthEvent(metrics.AuthEventLogin)
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user for password change: %w", err)
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.Validationf("Invalid old password")
	}

	passwordHash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", userID))
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetChannelProfile(ctx context.Context, username string, requesterID string) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperrors.Validationf("username is missing")
	}

	profile, err := s.userRepo.FindChannelProfile(ctx, username, requesterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusNotFound, "channel does not exist", err)
		}
		s.LogError(ctx, err, "Failed to build channel profile", slog.String("username", username))
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}
	return profile, nil
}

func (s *userService) GetWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error) {
	history, err := s.userRepo.FindWatchHistory(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load watch history", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	if history == nil {
		history = []domain.WatchHistoryEntry{}
	}
	return history, nil
}

// hashPassword reports passwords over the bcrypt byte limit as validation errors.
func hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", apperrors.Validationf("password must be at most %d bytes", utils.MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
