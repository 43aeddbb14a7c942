package services

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// DashboardSvcFacade serves the channel owner's dashboard.
type DashboardSvcFacade interface {
	GetChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error)

	// GetChannelVideos returns all of the channel's videos, unpublished ones included.
	GetChannelVideos(ctx context.Context, channelID string) ([]domain.Video, error)
}
