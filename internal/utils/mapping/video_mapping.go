package mapping

import (
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/models"
)

// ToModelVideo converts a domain Video to a model Video
func ToModelVideo(d domain.Video) models.Video {
	return models.Video{
		VideoID:     d.VideoID,
		VideoFile:   d.VideoFile,
		Thumbnail:   d.Thumbnail,
		Title:       d.Title,
		Description: d.Description,
		Duration:    d.Duration,
		Views:       d.Views,
		IsPublished: d.IsPublished,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainVideo converts a model Video to a domain Video
func ToDomainVideo(m models.Video) domain.Video {
	return domain.Video{
		VideoID:     m.VideoID,
		VideoFile:   m.VideoFile,
		Thumbnail:   m.Thumbnail,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		Views:       m.Views,
		IsPublished: m.IsPublished,
		OwnerID:     m.OwnerID,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainVideoWithOwner replaces the owner reference of a joined row with the reduced owner projection.
func ToDomainVideoWithOwner(m models.VideoOwnerRow) domain.VideoWithOwner {
	return domain.VideoWithOwner{
		VideoID:     m.VideoID,
		VideoFile:   m.VideoFile,
		Thumbnail:   m.Thumbnail,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		Views:       m.Views,
		IsPublished: m.IsPublished,
		Owner: domain.OwnerSummary{
			UserID:   m.OwnerID,
			FullName: m.OwnerFullName,
			Username: m.OwnerUsername,
			Avatar:   m.OwnerAvatar,
		},
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainVideoWithOwnerSlice converts joined rows in order.
func ToDomainVideoWithOwnerSlice(ms []models.VideoOwnerRow) []domain.VideoWithOwner {
	ds := make([]domain.VideoWithOwner, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVideoWithOwner(m)
	}
	return ds
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID: m.SubscriptionID,
		SubscriberID:   m.SubscriberID,
		ChannelID:      m.ChannelID,
		CreatedAt:      m.CreatedAt,
	}
}
