package dto

import (
	"testing"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateRegisterUserRequest(t *testing.T) {
	valid := RegisterUserRequest{FullName: "Alice", Email: "alice@example.com", Username: "alice", Password: "Secret123"}
	assert.NoError(t, Validate(valid))

	invalid := valid
	invalid.Email = "not-an-email"
	err := Validate(invalid)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "email must be a valid email")

	short := valid
	short.Password = "abc"
	err = Validate(short)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "password must be at least 6 characters")
}

func TestValidatePublishVideoRequestRequiresFiles(t *testing.T) {
	err := Validate(PublishVideoRequest{Title: "clip"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "videofile is required")
}

func TestListVideosParams(t *testing.T) {
	p := ListVideosParams{Page: 3, Limit: 10, SortBy: "views"}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, domain.VideoSortViews, p.SortField())

	p.SortBy = "password"
	assert.Equal(t, domain.VideoSortCreatedAt, p.SortField())
}

func TestNewApiResponse(t *testing.T) {
	resp := NewApiResponse(201, "x", "created")
	assert.True(t, resp.Success)
	assert.Equal(t, 201, resp.StatusCode)
}
