package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vidtube_backend/internal/models"
	"github.com/SscSPs/vidtube_backend/internal/utils/mapping"
)

type PgxDashboardRepository struct {
	BaseRepository
}

func newPgxDashboardRepository(db DBPool) portsrepo.DashboardRepositoryFacade {
	return &PgxDashboardRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.DashboardRepositoryFacade = (*PgxDashboardRepository)(nil)

func (r *PgxDashboardRepository) FindChannelStats(ctx context.Context, channelID string) (*domain.ChannelStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM videos v WHERE v.owner_id = $1) AS total_videos,
			(SELECT COALESCE(SUM(v.views), 0)::BIGINT FROM videos v WHERE v.owner_id = $1) AS total_views,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = $1) AS total_subscribers;
	`
	var stats domain.ChannelStats
	err := r.Pool.QueryRow(ctx, query, channelID).Scan(
		&stats.TotalVideos,
		&stats.TotalViews,
		&stats.TotalSubscribers,
	)
	if err != nil {
		return nil, translateError(err, "failed to load channel stats")
	}
	return &stats, nil
}

func (r *PgxDashboardRepository) ListChannelVideos(ctx context.Context, channelID string) ([]domain.Video, error) {
	query := `
		SELECT video_id, video_file, thumbnail, title, description, duration, views,
			is_published, owner_id, created_at, updated_at
		FROM videos
		WHERE owner_id = $1
		ORDER BY created_at DESC, video_id;
	`
	rows, err := r.Pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query channel videos: %w", err)
	}
	defer rows.Close()

	videos := []domain.Video{}
	for rows.Next() {
		var m models.Video
		if err := rows.Scan(
			&m.VideoID,
			&m.VideoFile,
			&m.Thumbnail,
			&m.Title,
			&m.Description,
			&m.Duration,
			&m.Views,
			&m.IsPublished,
			&m.OwnerID,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan channel video: %w", err)
		}
		videos = append(videos, mapping.ToDomainVideo(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel videos: %w", err)
	}
	return videos, nil
}
