package services_test

import (
	"net/http"
	"testing"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SubscriptionServiceTestSuite struct {
	serviceSuite
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}

func (s *SubscriptionServiceTestSuite) TestToggleSubscription() {
	alice := s.mustRegister("alice")
	bob := s.mustRegister("bob")

	sub, subscribed, err := s.subscriptions.ToggleSubscription(s.ctx, bob.UserID, alice.UserID)
	s.Require().NoError(err)
	s.True(subscribed)
	s.Require().NotNil(sub)
	s.Equal(bob.UserID, sub.SubscriberID)
	s.Equal(alice.UserID, sub.ChannelID)

	subscribers, err := s.subscriptions.ListChannelSubscribers(s.ctx, alice.UserID)
	s.Require().NoError(err)
	s.Require().Len(subscribers, 1)
	s.Equal("bob", subscribers[0].User.Username)

	channels, err := s.subscriptions.ListSubscribedChannels(s.ctx, bob.UserID)
	s.Require().NoError(err)
	s.Require().Len(channels, 1)
	s.Equal("alice", channels[0].User.Username)

	sub, subscribed, err = s.subscriptions.ToggleSubscription(s.ctx, bob.UserID, alice.UserID)
	s.Require().NoError(err)
	s.False(subscribed)
	s.Nil(sub)

	subscribers, err = s.subscriptions.ListChannelSubscribers(s.ctx, alice.UserID)
	s.Require().NoError(err)
	s.NotNil(subscribers)
	s.Empty(subscribers)
}

func (s *SubscriptionServiceTestSuite) TestToggleSubscription_Errors() {
	alice := s.mustRegister("alice")

	_, _, err := s.subscriptions.ToggleSubscription(s.ctx, alice.UserID, "bad-id")
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))

	_, _, err = s.subscriptions.ToggleSubscription(s.ctx, alice.UserID, alice.UserID)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))

	_, _, err = s.subscriptions.ToggleSubscription(s.ctx, alice.UserID, uuid.NewString())
	s.Equal(http.StatusNotFound, apperrors.StatusCode(err))
}

func (s *SubscriptionServiceTestSuite) TestListRejectsInvalidIDs() {
	_, err := s.subscriptions.ListChannelSubscribers(s.ctx, "nope")
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
	_, err = s.subscriptions.ListSubscribedChannels(s.ctx, "nope")
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
}
