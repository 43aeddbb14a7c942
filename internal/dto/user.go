package dto

import (
	"io"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// FileUpload is an uploaded file handed from the transport layer to the services.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// RegisterUserRequest is the multipart registration form.
type RegisterUserRequest struct {
	FullName string `form:"fullname" validate:"required,max=255"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Username string `form:"username" validate:"required,max=64"`
	Password string `form:"password" validate:"required,min=6,max=72"`

	Avatar     *FileUpload `form:"-" validate:"-"`
	CoverImage *FileUpload `form:"-" validate:"-"`
}

// LoginRequest accepts either the username or the email.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenRequest carries the refresh token for clients that don't use cookies.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest defines the data needed to change the current password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}

// UserResponse is the public view of a user. It never carries credentials.
type UserResponse struct {
	UserID     string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullname"`
	Avatar     string    `json:"avatar"`
	CoverImage *string   `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
