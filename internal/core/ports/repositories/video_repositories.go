package repositories

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// VideoListQuery selects a page of a channel's videos.
type VideoListQuery struct {
	OwnerID    string
	SortBy     domain.VideoSortField
	Descending bool
	Limit      int
	Offset     int
}

// VideoReader defines read operations for video data
type VideoReader interface {
	FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error)
	FindVideoWithOwnerByID(ctx context.Context, videoID string) (*domain.VideoWithOwner, error)
	ListVideosByOwner(ctx context.Context, query VideoListQuery) ([]domain.VideoWithOwner, error)
}

// VideoWriter defines write operations for video data
type VideoWriter interface {
	SaveVideo(ctx context.Context, video domain.Video) error
	UpdateVideo(ctx context.Context, video domain.Video) error
	DeleteVideo(ctx context.Context, videoID string) error

	// RecordView increments the view counter and appends the video to the viewer's
	// watch history atomically.
	RecordView(ctx context.Context, videoID string, viewerID string) error
}

// VideoRepositoryFacade combines all video-related repository interfaces
type VideoRepositoryFacade interface {
	VideoReader
	VideoWriter
}
