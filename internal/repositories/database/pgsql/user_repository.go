package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vidtube_backend/internal/models"
	"github.com/SscSPs/vidtube_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db DBPool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, email, fullname, avatar, cover_image, password_hash,
		created_at, updated_at, refresh_token_hash, refresh_token_expiry_time`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.FullName,
		&m.Avatar,
		&m.CoverImage,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, username, email, fullname, avatar, cover_image, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.FullName,
		m.Avatar,
		m.CoverImage,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return translateError(err, "failed to save user")
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to find user by ID %s", userID))
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByLogin(ctx context.Context, username, email string) (*domain.User, error) {
	if username == "" && email == "" {
		return nil, apperrors.ErrNotFound
	}
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND email = $2)
		ORDER BY created_at
		LIMIT 1;
	`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, strings.ToLower(username), strings.ToLower(email)))
	if err != nil {
		return nil, translateError(err, "failed to find user by login")
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE user_id = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, passwordHash, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $1, refresh_token_expiry_time = $2, updated_at = NOW()
		WHERE user_id = $3;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, refreshTokenExpiryTime, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, updated_at = NOW()
		WHERE user_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) FindChannelProfile(ctx context.Context, username string, requesterID string) (*domain.ChannelProfile, error) {
	query := `
		SELECT u.user_id, u.fullname, u.username, u.email, u.avatar, u.cover_image, u.created_at,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.user_id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.user_id) AS channels_subscribed_to_count,
			EXISTS (
				SELECT 1 FROM subscriptions s WHERE s.channel_id = u.user_id AND s.subscriber_id = $2
			) AS is_subscribed
		FROM users u
		WHERE u.username = $1;
	`
	var (
		p     domain.ChannelProfile
		cover *string
	)
	err := r.Pool.QueryRow(ctx, query, username, requesterID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Username,
		&p.Email,
		&p.Avatar,
		&cover,
		&p.CreatedAt,
		&p.SubscriberCount,
		&p.ChannelsSubscribedToCount,
		&p.IsSubscribed,
	)
	if err != nil {
		return nil, translateError(err, "failed to load channel profile")
	}
	p.CoverImage = cover
	return &p, nil
}

func (r *PgxUserRepository) FindWatchHistory(ctx context.Context, userID string) ([]domain.WatchHistoryEntry, error) {
	query := `
		SELECT v.video_id, v.video_file, v.thumbnail, v.title, v.description, v.duration, v.views,
			v.is_published, v.owner_id, v.created_at, v.updated_at,
			o.fullname, o.username, o.avatar
		FROM watch_history wh
		JOIN videos v ON v.video_id = wh.video_id
		JOIN users o ON o.user_id = v.owner_id
		WHERE wh.user_id = $1
		ORDER BY wh.seq ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	modelRows, err := scanVideoOwnerRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan watch history: %w", err)
	}
	return mapping.ToDomainVideoWithOwnerSlice(modelRows), nil
}
