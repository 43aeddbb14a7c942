package services

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
)

// VideoSvcFacade defines video operations
type VideoSvcFacade interface {
	// PublishVideo uploads the media files and creates the video owned by ownerID.
	PublishVideo(ctx context.Context, ownerID string, req dto.PublishVideoRequest) (*domain.Video, error)

	// ListVideos lists the requester's own videos.
	ListVideos(ctx context.Context, ownerID string, params dto.ListVideosParams) ([]domain.VideoWithOwner, error)

	// WatchVideo returns the video and records the view in the viewer's watch history.
	WatchVideo(ctx context.Context, videoID string, viewerID string) (*domain.VideoWithOwner, error)

	UpdateVideo(ctx context.Context, videoID string, req dto.UpdateVideoRequest, requesterID string) (*domain.Video, error)
	DeleteVideo(ctx context.Context, videoID string, requesterID string) error
	TogglePublishStatus(ctx context.Context, videoID string, requesterID string) (*domain.Video, error)
}
