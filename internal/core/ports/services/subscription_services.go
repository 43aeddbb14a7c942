package services

import (
	"context"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// SubscriptionSvcFacade defines subscription operations
type SubscriptionSvcFacade interface {
	// ToggleSubscription subscribes subscriberID to channelID, or unsubscribes if already
	// subscribed. The returned subscription is nil after an unsubscribe.
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, bool, error)

	ListChannelSubscribers(ctx context.Context, channelID string) ([]domain.SubscriptionWithUser, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]domain.SubscriptionWithUser, error)
}
