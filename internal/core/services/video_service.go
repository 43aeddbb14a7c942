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
	"github.com/google/uuid"
)

type videoService struct {
	BaseService
	videoRepo portsrepo.VideoRepositoryFacade
	media     portssvc.MediaStore
}

// NewVideoService creates a new video service.
func NewVideoService(videoRepo portsrepo.VideoRepositoryFacade, media portssvc.MediaStore) portssvc.VideoSvcFacade {
	return &videoService{
		videoRepo: videoRepo,
		media:     media,
	}
}

func (s *videoService) PublishVideo(ctx context.Context, ownerID string, req dto.PublishVideoRequest) (*domain.Video, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	videoAsset, err := uploadMedia(ctx, s.media, mediaVideo, ownerID, req.VideoFile)
	if err != nil {
		s.LogError(ctx, err, "Video upload failed", slog.String("owner_id", ownerID))
		return nil, apperrors.NewAppError(http.StatusBadRequest, "failed to upload video file", err)
	}
	thumbAsset, err := uploadMedia(ctx, s.media, mediaThumbnail, ownerID, req.Thumbnail)
	if err != nil {
		s.LogError(ctx, err, "Thumbnail upload failed", slog.String("owner_id", ownerID))
		s.discardMedia(ctx, videoAsset.ObjectKey)
		return nil, apperrors.NewAppError(http.StatusBadRequest, "failed to upload thumbnail", err)
	}

	now := time.Now().UTC()
	video := domain.Video{
		VideoID:     uuid.NewString(),
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		IsPublished: true,
		OwnerID:     ownerID,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.videoRepo.SaveVideo(ctx, video); err != nil {
		s.LogError(ctx, err, "Failed to save video", slog.String("video_id", video.VideoID))
		s.discardMedia(ctx, videoAsset.ObjectKey)
		s.discardMedia(ctx, thumbAsset.ObjectKey)
		return nil, fmt.Errorf("failed to publish video: %w", err)
	}

	s.LogInfo(ctx, "Video published", slog.String("video_id", video.VideoID))
	return &video, nil
}

func (s *videoService) discardMedia(ctx context.Context, objectKey string) {
	if err := s.media.Delete(ctx, objectKey); err != nil {
		s.LogWarn(ctx, "Failed to discard uploaded media", slog.String("object_key", objectKey), slog.String("error", err.Error()))
	}
}

func (s *videoService) ListVideos(ctx context.Context, ownerID string, params dto.ListVideosParams) ([]domain.VideoWithOwner, error) {
	if params.Limit <= 0 {
		params.Limit = 10
	}
	videos, err := s.videoRepo.ListVideosByOwner(ctx, portsrepo.VideoListQuery{
		OwnerID:    ownerID,
		SortBy:     params.SortField(),
		Descending: params.SortType == "desc",
		Limit:      params.Limit,
		Offset:     params.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	if videos == nil {
		videos = []domain.VideoWithOwner{}
	}
	return videos, nil
}

func (s *videoService) WatchVideo(ctx context.Context, videoID string, viewerID string) (*domain.VideoWithOwner, error) {
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, apperrors.Validationf("invalid video id")
	}

	video, err := s.videoRepo.FindVideoWithOwnerByID(ctx, videoID)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to get video")
	}
	if !video.IsPublished && video.Owner.UserID != viewerID {
		return nil, apperrors.NewAppError(http.StatusNotFound, "video not found", apperrors.ErrNotFound)
	}

	if err := s.videoRepo.RecordView(ctx, videoID, viewerID); err != nil {
		s.LogError(ctx, err, "Failed to record view", slog.String("video_id", videoID))
		return nil, fmt.Errorf("failed to record view: %w", err)
	}
	video.Views++
	return video, nil
}

func (s *videoService) UpdateVideo(ctx context.Context, videoID string, req dto.UpdateVideoRequest, requesterID string) (*domain.Video, error) {
	if req.Title == nil && req.Description == nil && req.Thumbnail == nil {
		return nil, apperrors.Validationf("title, description or thumbnail is required")
	}

	video, err := s.ownedVideo(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.Validationf("title cannot be empty")
		}
		video.Title = title
	}
	if req.Description != nil {
		video.Description = strings.TrimSpace(*req.Description)
	}

	var newThumbKey string
	if req.Thumbnail != nil {
		thumbAsset, err := uploadMedia(ctx, s.media, mediaThumbnail, requesterID, req.Thumbnail)
		if err != nil {
			s.LogError(ctx, err, "Thumbnail upload failed", slog.String("video_id", videoID))
			return nil, apperrors.NewAppError(http.StatusBadRequest, "failed to upload thumbnail", err)
		}
		newThumbKey = thumbAsset.ObjectKey
		video.Thumbnail = thumbAsset.URL
	}
	video.UpdatedAt = time.Now().UTC()

	if err := s.videoRepo.UpdateVideo(ctx, *video); err != nil {
		if newThumbKey != "" {
			s.discardMedia(ctx, newThumbKey)
		}
		return nil, fmt.Errorf("failed to update video: %w", err)
	}
	return video, nil
}

func (s *videoService) DeleteVideo(ctx context.Context, videoID string, requesterID string) error {
	if _, err := s.ownedVideo(ctx, videoID, requesterID); err != nil {
		return err
	}
	if err := s.videoRepo.DeleteVideo(ctx, videoID); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	s.LogInfo(ctx, "Video deleted", slog.String("video_id", videoID))
	return nil
}

func (s *videoService) TogglePublishStatus(ctx context.Context, videoID string, requesterID string) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	video.UpdatedAt = time.Now().UTC()

	if err := s.videoRepo.UpdateVideo(ctx, *video); err != nil {
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}
	return video, nil
}

// ownedVideo loads the video and checks that requesterID owns it.
func (s *videoService) ownedVideo(ctx context.Context, videoID string, requesterID string) (*domain.Video, error) {
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, apperrors.Validationf("invalid video id")
	}
	video, err := s.videoRepo.FindVideoByID(ctx, videoID)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to get video")
	}
	if video.OwnerID != requesterID {
		s.LogWarn(ctx, "Video modification by non-owner", slog.String("video_id", videoID), slog.String("requester_id", requesterID))
		return nil, apperrors.NewAppError(http.StatusForbidden, "only the owner can modify this video", apperrors.ErrForbidden)
	}
	return video, nil
}

func (s *videoService) notFoundOr(err error, msg string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewAppError(http.StatusNotFound, "video not found", err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
