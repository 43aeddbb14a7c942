package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vidtube_backend/internal/models"
	"github.com/SscSPs/vidtube_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxVideoRepository struct {
	BaseRepository
}

func newPgxVideoRepository(db DBPool) portsrepo.VideoRepositoryFacade {
	return &PgxVideoRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.VideoRepositoryFacade = (*PgxVideoRepository)(nil)

// sortColumns whitelists the ORDER BY expressions reachable from a query.
var sortColumns = map[domain.VideoSortField]string{
	domain.VideoSortCreatedAt: "v.created_at",
	domain.VideoSortViews:     "v.views",
	domain.VideoSortTitle:     "v.title",
	domain.VideoSortDuration:  "v.duration",
}

const videoOwnerSelect = `
	SELECT v.video_id, v.video_file, v.thumbnail, v.title, v.description, v.duration, v.views,
		v.is_published, v.owner_id, v.created_at, v.updated_at,
		o.fullname, o.username, o.avatar
	FROM videos v
	JOIN users o ON o.user_id = v.owner_id
`

func scanVideoOwnerRow(row pgx.Row) (models.VideoOwnerRow, error) {
	var m models.VideoOwnerRow
	err := row.Scan(
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
		&m.OwnerFullName,
		&m.OwnerUsername,
		&m.OwnerAvatar,
	)
	return m, err
}

func scanVideoOwnerRows(rows pgx.Rows) ([]models.VideoOwnerRow, error) {
	modelRows := []models.VideoOwnerRow{}
	for rows.Next() {
		m, err := scanVideoOwnerRow(rows)
		if err != nil {
			return nil, err
		}
		modelRows = append(modelRows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return modelRows, nil
}

func (r *PgxVideoRepository) SaveVideo(ctx context.Context, video domain.Video) error {
	m := mapping.ToModelVideo(video)
	query := `
		INSERT INTO videos (video_id, video_file, thumbnail, title, description, duration, views,
			is_published, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.VideoID,
		m.VideoFile,
		m.Thumbnail,
		m.Title,
		m.Description,
		m.Duration,
		m.Views,
		m.IsPublished,
		m.OwnerID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return translateError(err, "failed to save video")
}

func (r *PgxVideoRepository) FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error) {
	query := `
		SELECT video_id, video_file, thumbnail, title, description, duration, views,
			is_published, owner_id, created_at, updated_at
		FROM videos
		WHERE video_id = $1;
	`
	var m models.Video
	err := r.Pool.QueryRow(ctx, query, videoID).Scan(
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
	)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find video %s", videoID))
	}
	d := mapping.ToDomainVideo(m)
	return &d, nil
}

func (r *PgxVideoRepository) FindVideoWithOwnerByID(ctx context.Context, videoID string) (*domain.VideoWithOwner, error) {
	m, err := scanVideoOwnerRow(r.Pool.QueryRow(ctx, videoOwnerSelect+` WHERE v.video_id = $1;`, videoID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find video %s", videoID))
	}
	d := mapping.ToDomainVideoWithOwner(m)
	return &d, nil
}

func (r *PgxVideoRepository) ListVideosByOwner(ctx context.Context, q portsrepo.VideoListQuery) ([]domain.VideoWithOwner, error) {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns[domain.VideoSortCreatedAt]
	}
	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	query := videoOwnerSelect + fmt.Sprintf(`
		WHERE v.owner_id = $1
		ORDER BY %s %s, v.video_id
		LIMIT $2 OFFSET $3;`, column, direction)

	rows, err := r.Pool.Query(ctx, query, q.OwnerID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	modelRows, err := scanVideoOwnerRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan video rows: %w", err)
	}
	return mapping.ToDomainVideoWithOwnerSlice(modelRows), nil
}

func (r *PgxVideoRepository) UpdateVideo(ctx context.Context, video domain.Video) error {
	m := mapping.ToModelVideo(video)
	query := `
		UPDATE videos
		SET title = $1, description = $2, thumbnail = $3, is_published = $4, updated_at = $5
		WHERE video_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Title, m.Description, m.Thumbnail, m.IsPublished, m.UpdatedAt, m.VideoID)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxVideoRepository) DeleteVideo(ctx context.Context, videoID string) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM watch_history WHERE video_id = $1;`, videoID); err != nil {
			return fmt.Errorf("failed to delete watch history entries: %w", err)
		}
		cmdTag, err := tx.Exec(ctx, `DELETE FROM videos WHERE video_id = $1;`, videoID)
		if err != nil {
			return fmt.Errorf("failed to delete video: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *PgxVideoRepository) RecordView(ctx context.Context, videoID string, viewerID string) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE video_id = $1;`, videoID)
		if err != nil {
			return fmt.Errorf("failed to increment views: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO watch_history (user_id, video_id, watched_at) VALUES ($1, $2, NOW());`,
			viewerID, videoID)
		if err != nil {
			return fmt.Errorf("failed to append watch history: %w", err)
		}
		return nil
	})
}
