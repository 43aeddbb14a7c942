package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

type subscriptionService struct {
	BaseService
	subRepo  portsrepo.SubscriptionRepositoryFacade
	userRepo portsrepo.UserReader
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(subRepo portsrepo.SubscriptionRepositoryFacade, userRepo portsrepo.UserReader) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

func (s *subscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, bool, error) {
	if _, err := uuid.Parse(channelID); err != nil {
		return nil, false, apperrors.Validationf("invalid channel id")
	}
	if subscriberID == channelID {
		return nil, false, apperrors.Validationf("cannot subscribe to your own channel")
	}

	if _, err := s.userRepo.FindUserByID(ctx, channelID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, apperrors.NewAppError(http.StatusNotFound, "channel does not exist", err)
		}
		return nil, false, fmt.Errorf("failed to load channel: %w", err)
	}

	existing, err := s.subRepo.FindSubscription(ctx, subscriberID, channelID)
	switch {
	case err == nil:
		if err := s.subRepo.DeleteSubscription(ctx, subscriberID, channelID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, fmt.Errorf("failed to unsubscribe: %w", err)
		}
		s.LogInfo(ctx, "Unsubscribed", slog.String("channel_id", channelID), slog.String("subscription_id", existing.SubscriptionID))
		return nil, false, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, false, fmt.Errorf("failed to check subscription: %w", err)
	}

	sub := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		SubscriberID:   subscriberID,
		ChannelID:      channelID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.subRepo.SaveSubscription(ctx, sub); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// a concurrent request subscribed first
			current, findErr := s.subRepo.FindSubscription(ctx, subscriberID, channelID)
			if findErr == nil {
				return current, true, nil
			}
		}
		return nil, false, fmt.Errorf("failed to subscribe: %w", err)
	}
	s.LogInfo(ctx, "Subscribed", slog.String("channel_id", channelID), slog.String("subscription_id", sub.SubscriptionID))
	return &sub, true, nil
}

func (s *subscriptionService) ListChannelSubscribers(ctx context.Context, channelID string) ([]domain.SubscriptionWithUser, error) {
	if _, err := uuid.Parse(channelID); err != nil {
		return nil, apperrors.Validationf("invalid channel id")
	}
	subs, err := s.subRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return nonNilSubs(subs), nil
}

func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]domain.SubscriptionWithUser, error) {
	if _, err := uuid.Parse(subscriberID); err != nil {
		return nil, apperrors.Validationf("invalid subscriber id")
	}
	subs, err := s.subRepo.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed channels: %w", err)
	}
	return nonNilSubs(subs), nil
}

func nonNilSubs(subs []domain.SubscriptionWithUser) []domain.SubscriptionWithUser {
	if subs == nil {
		return []domain.SubscriptionWithUser{}
	}
	return subs
}
