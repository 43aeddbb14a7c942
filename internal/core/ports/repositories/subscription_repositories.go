package repositories

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// SubscriptionReader defines read operations for subscriptions
type SubscriptionReader interface {
	// FindSubscription returns the subscription of subscriberID to channelID, or ErrNotFound.
	FindSubscription(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error)

	// ListSubscribers lists the users subscribed to channelID.
	ListSubscribers(ctx context.Context, channelID string) ([]domain.SubscriptionWithUser, error)

	// ListSubscribedChannels lists the channels subscriberID is subscribed to.
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]domain.SubscriptionWithUser, error)
}

// SubscriptionWriter defines write operations for subscriptions
type SubscriptionWriter interface {
	SaveSubscription(ctx context.Context, sub domain.Subscription) error
	DeleteSubscription(ctx context.Context, subscriberID, channelID string) error
}

// SubscriptionRepositoryFacade combines all subscription-related repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}
