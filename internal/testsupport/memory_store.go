package testsupport

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
)

// MemoryStore is an in-memory implementation of every repository port intended for
// tests. Users, videos, subscriptions and watch history share one lock so the
// derived views see a consistent state.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]domain.User
	videos        map[string]domain.Video
	subscriptions []domain.Subscription
	history       map[string][]string
}

var (
	_ portsrepo.UserRepositoryFacade         = (*MemoryStore)(nil)
	_ portsrepo.VideoRepositoryFacade        = (*MemoryStore)(nil)
	_ portsrepo.SubscriptionRepositoryFacade = (*MemoryStore)(nil)
	_ portsrepo.DashboardRepositoryFacade    = (*MemoryStore)(nil)
)

// NewMemoryStore constructs a MemoryStore with empty state.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]domain.User),
		videos:  make(map[string]domain.Video),
		history: make(map[string][]string),
	}
}

// Repositories exposes the store through the repository provider used by the services.
func (s *MemoryStore) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         s,
		VideoRepo:        s,
		SubscriptionRepo: s,
		DashboardRepo:    s,
	}
}

// --- users ---

func (s *MemoryStore) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperrors.ErrDuplicate
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (s *MemoryStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) FindUserByLogin(_ context.Context, username, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, email = strings.ToLower(username), strings.ToLower(email)
	for _, u := range s.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStore) UpdatePassword(_ context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	return s.mutateUser(userID, func(u *domain.User) {
		u.PasswordHash = passwordHash
		u.UpdatedAt = updatedAt
	})
}

func (s *MemoryStore) UpdateRefreshToken(_ context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.mutateUser(userID, func(u *domain.User) {
		u.RefreshTokenHash = &refreshTokenHash
		u.RefreshTokenExpiryTime = &refreshTokenExpiryTime
	})
}

func (s *MemoryStore) ClearRefreshToken(_ context.Context, userID string) error {
	return s.mutateUser(userID, func(u *domain.User) {
		u.RefreshTokenHash = nil
		u.RefreshTokenExpiryTime = nil
	})
}

func (s *MemoryStore) mutateUser(userID string, fn func(u *domain.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	fn(&u)
	s.users[userID] = u
	return nil
}

// DeleteUser removes a user. Not part of any port; lets tests simulate a deleted account.
func (s *MemoryStore) DeleteUser(userID string) {
	s.mu.Lock()
	delete(s.users, userID)
	s.mu.Unlock()
}

func (s *MemoryStore) FindChannelProfile(_ context.Context, username string, requesterID string) (*domain.ChannelProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var channel *domain.User
	for _, u := range s.users {
		if u.Username == username {
			u := u
			channel = &u
			break
		}
	}
	if channel == nil {
		return nil, apperrors.ErrNotFound
	}

	p := &domain.ChannelProfile{
		UserID:     channel.UserID,
		FullName:   channel.FullName,
		Username:   channel.Username,
		Email:      channel.Email,
		Avatar:     channel.Avatar,
		CoverImage: channel.CoverImage,
		CreatedAt:  channel.CreatedAt,
	}
	for _, sub := range s.subscriptions {
		if sub.ChannelID == channel.UserID {
			p.SubscriberCount++
			if sub.SubscriberID == requesterID {
				p.IsSubscribed = true
			}
		}
		if sub.SubscriberID == channel.UserID {
			p.ChannelsSubscribedToCount++
		}
	}
	return p, nil
}

func (s *MemoryStore) FindWatchHistory(_ context.Context, userID string) ([]domain.WatchHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []domain.WatchHistoryEntry{}
	for _, videoID := range s.history[userID] {
		v, ok := s.videos[videoID]
		if !ok {
			continue
		}
		entries = append(entries, s.withOwner(v))
	}
	return entries, nil
}

// --- videos ---

func (s *MemoryStore) withOwner(v domain.Video) domain.VideoWithOwner {
	owner := s.users[v.OwnerID]
	return domain.VideoWithOwner{
		VideoID:     v.VideoID,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		Owner: domain.OwnerSummary{
			UserID:   owner.UserID,
			FullName: owner.FullName,
			Username: owner.Username,
			Avatar:   owner.Avatar,
		},
		Timestamps: v.Timestamps,
	}
}

func (s *MemoryStore) SaveVideo(_ context.Context, video domain.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.videos[video.VideoID]; exists {
		return apperrors.ErrDuplicate
	}
	s.videos[video.VideoID] = video
	return nil
}

func (s *MemoryStore) FindVideoByID(_ context.Context, videoID string) (*domain.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[videoID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (s *MemoryStore) FindVideoWithOwnerByID(_ context.Context, videoID string) (*domain.VideoWithOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[videoID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	withOwner := s.withOwner(v)
	return &withOwner, nil
}

func (s *MemoryStore) ListVideosByOwner(_ context.Context, q portsrepo.VideoListQuery) ([]domain.VideoWithOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := []domain.Video{}
	for _, v := range s.videos {
		if v.OwnerID == q.OwnerID {
			owned = append(owned, v)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		if q.Descending {
			return videoLess(owned[j], owned[i], q.SortBy)
		}
		return videoLess(owned[i], owned[j], q.SortBy)
	})

	result := []domain.VideoWithOwner{}
	for i := q.Offset; i < len(owned) && (q.Limit <= 0 || len(result) < q.Limit); i++ {
		result = append(result, s.withOwner(owned[i]))
	}
	return result, nil
}

func videoLess(a, b domain.Video, field domain.VideoSortField) bool {
	switch field {
	case domain.VideoSortViews:
		return a.Views < b.Views
	case domain.VideoSortTitle:
		return a.Title < b.Title
	case domain.VideoSortDuration:
		return a.Duration < b.Duration
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func (s *MemoryStore) UpdateVideo(_ context.Context, video domain.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.videos[video.VideoID]
	if !ok {
		return apperrors.ErrNotFound
	}
	current.Title = video.Title
	current.Description = video.Description
	current.Thumbnail = video.Thumbnail
	current.IsPublished = video.IsPublished
	current.UpdatedAt = video.UpdatedAt
	s.videos[video.VideoID] = current
	return nil
}

func (s *MemoryStore) DeleteVideo(_ context.Context, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[videoID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.videos, videoID)
	for userID, ids := range s.history {
		kept := ids[:0]
		for _, id := range ids {
			if id != videoID {
				kept = append(kept, id)
			}
		}
		s.history[userID] = kept
	}
	return nil
}

func (s *MemoryStore) RecordView(_ context.Context, videoID string, viewerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[videoID]
	if !ok {
		return apperrors.ErrNotFound
	}
	v.Views++
	s.videos[videoID] = v
	s.history[viewerID] = append(s.history[viewerID], videoID)
	return nil
}

// --- subscriptions ---

func (s *MemoryStore) SaveSubscription(_ context.Context, sub domain.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subscriptions {
		if existing.SubscriberID == sub.SubscriberID && existing.ChannelID == sub.ChannelID {
			return apperrors.ErrDuplicate
		}
	}
	s.subscriptions = append(s.subscriptions, sub)
	return nil
}

func (s *MemoryStore) FindSubscription(_ context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subscriptions {
		if sub.SubscriberID == subscriberID && sub.ChannelID == channelID {
			sub := sub
			return &sub, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *MemoryStore) DeleteSubscription(_ context.Context, subscriberID, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscriptions {
		if sub.SubscriberID == subscriberID && sub.ChannelID == channelID {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *MemoryStore) ListSubscribers(_ context.Context, channelID string) ([]domain.SubscriptionWithUser, error) {
	return s.listSubscriptions(func(sub domain.Subscription) (string, bool) {
		return sub.SubscriberID, sub.ChannelID == channelID
	}), nil
}

func (s *MemoryStore) ListSubscribedChannels(_ context.Context, subscriberID string) ([]domain.SubscriptionWithUser, error) {
	return s.listSubscriptions(func(sub domain.Subscription) (string, bool) {
		return sub.ChannelID, sub.SubscriberID == subscriberID
	}), nil
}

func (s *MemoryStore) listSubscriptions(match func(sub domain.Subscription) (string, bool)) []domain.SubscriptionWithUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.SubscriptionWithUser{}
	for i := len(s.subscriptions) - 1; i >= 0; i-- {
		sub := s.subscriptions[i]
		otherID, ok := match(sub)
		if !ok {
			continue
		}
		other := s.users[otherID]
		result = append(result, domain.SubscriptionWithUser{
			SubscriptionID: sub.SubscriptionID,
			User: domain.OwnerSummary{
				UserID:   other.UserID,
				FullName: other.FullName,
				Username: other.Username,
				Avatar:   other.Avatar,
			},
			CreatedAt: sub.CreatedAt,
		})
	}
	return result
}

// --- dashboard ---

func (s *MemoryStore) FindChannelStats(_ context.Context, channelID string) (*domain.ChannelStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &domain.ChannelStats{}
	for _, v := range s.videos {
		if v.OwnerID == channelID {
			stats.TotalVideos++
			stats.TotalViews += v.Views
		}
	}
	for _, sub := range s.subscriptions {
		if sub.ChannelID == channelID {
			stats.TotalSubscribers++
		}
	}
	return stats, nil
}

func (s *MemoryStore) ListChannelVideos(_ context.Context, channelID string) ([]domain.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	videos := []domain.Video{}
	for _, v := range s.videos {
		if v.OwnerID == channelID {
			videos = append(videos, v)
		}
	}
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
	return videos, nil
}
