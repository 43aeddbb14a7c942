package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
)

type dashboardService struct {
	BaseService
	dashboardRepo portsrepo.DashboardRepositoryFacade
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(dashboardRepo portsrepo.DashboardRepositoryFacade) portssvc.DashboardSvcFacade {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

func (s *dashboardService) GetChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error) {
	stats, err := s.dashboardRepo.FindChannelStats(ctx, channelID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load channel stats", slog.String("channel_id", channelID))
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}
	return stats, nil
}

func (s *dashboardService) GetChannelVideos(ctx context.Context, channelID string) ([]domain.Video, error) {
	videos, err := s.dashboardRepo.ListChannelVideos(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel videos: %w", err)
	}
	if videos == nil {
		videos = []domain.Video{}
	}
	return videos, nil
}
