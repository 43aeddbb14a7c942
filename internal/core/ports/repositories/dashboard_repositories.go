package repositories

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// DashboardRepositoryFacade defines the owner-facing channel aggregates
type DashboardRepositoryFacade interface {
	// FindChannelStats counts the channel's videos, their views and its subscribers.
	// A channel without videos or subscribers yields zero totals.
	FindChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error)

	// ListChannelVideos returns every video of the channel, published or not, newest first.
	ListChannelVideos(ctx context.Context, channelID string) ([]domain.Video, error)
}
