package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vidtube_backend/internal/models"
	"github.com/SscSPs/vidtube_backend/internal/utils/mapping"
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(db DBPool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (subscription_id, subscriber_id, channel_id, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, sub.SubscriptionID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	return translateError(err, "failed to save subscription")
}

func (r *PgxSubscriptionRepository) FindSubscription(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	query := `
		SELECT subscription_id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2;
	`
	var m models.Subscription
	err := r.Pool.QueryRow(ctx, query, subscriberID, channelID).Scan(
		&m.SubscriptionID,
		&m.SubscriberID,
		&m.ChannelID,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err, "failed to find subscription")
	}
	d := mapping.ToDomainSubscription(m)
	return &d, nil
}

func (r *PgxSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID, channelID string) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2;`,
		subscriberID, channelID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSubscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]domain.SubscriptionWithUser, error) {
	query := `
		SELECT s.subscription_id, s.created_at, u.user_id, u.fullname, u.username, u.avatar
		FROM subscriptions s
		JOIN users u ON u.user_id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC;
	`
	return r.listWithUser(ctx, query, channelID)
}

func (r *PgxSubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]domain.SubscriptionWithUser, error) {
	query := `
		SELECT s.subscription_id, s.created_at, u.user_id, u.fullname, u.username, u.avatar
		FROM subscriptions s
		JOIN users u ON u.user_id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC;
	`
	return r.listWithUser(ctx, query, subscriberID)
}

func (r *PgxSubscriptionRepository) listWithUser(ctx context.Context, query string, id string) ([]domain.SubscriptionWithUser, error) {
	rows, err := r.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	result := []domain.SubscriptionWithUser{}
	for rows.Next() {
		var s domain.SubscriptionWithUser
		if err := rows.Scan(
			&s.SubscriptionID,
			&s.CreatedAt,
			&s.User.UserID,
			&s.User.FullName,
			&s.User.Username,
			&s.User.Avatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}
	return result, nil
}
