package dto

import "github.com/SscSPs/vidtube_backend/internal/core/domain"

// PublishVideoRequest is the multipart upload form of a video.
type PublishVideoRequest struct {
	Title       string  `form:"title" validate:"required,max=255"`
	Description string  `form:"description" validate:"max=5000"`
	Duration    float64 `form:"duration" validate:"gte=0"`

	VideoFile *FileUpload `form:"-" validate:"required"`
	Thumbnail *FileUpload `form:"-" validate:"required"`
}

// UpdateVideoRequest defines the data allowed for updating a video.
// Pointers distinguish omitted fields from empty ones.
type UpdateVideoRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=5000"`

	// Thumbnail replaces the current thumbnail; multipart requests only.
	Thumbnail *FileUpload `json:"-" form:"-"`
}

// ListVideosParams defines query parameters for listing videos.
type ListVideosParams struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=10" binding:"min=1,max=100"`
	SortBy   string `form:"sortBy,default=createdAt"`
	SortType string `form:"sortType,default=asc" binding:"omitempty,oneof=asc desc"`
}

// SortField returns the validated sort field, defaulting to creation time.
func (p ListVideosParams) SortField() domain.VideoSortField {
	f := domain.VideoSortField(p.SortBy)
	if !f.IsValid() {
		return domain.VideoSortCreatedAt
	}
	return f
}

// Offset returns the row offset of the requested page.
func (p ListVideosParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
