package models

import "time"

// Video is the database row of the videos table.
type Video struct {
	VideoID     string    `db:"video_id"`
	VideoFile   string    `db:"video_file"`
	Thumbnail   string    `db:"thumbnail"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Duration    float64   `db:"duration"`
	Views       int64     `db:"views"`
	IsPublished bool      `db:"is_published"`
	OwnerID     string    `db:"owner_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// VideoOwnerRow is a video joined with the reduced owner columns.
type VideoOwnerRow struct {
	Video
	OwnerFullName string `db:"owner_fullname"`
	OwnerUsername string `db:"owner_username"`
	OwnerAvatar   string `db:"owner_avatar"`
}

// Subscription is the database row of the subscriptions table.
type Subscription struct {
	SubscriptionID string    `db:"subscription_id"`
	SubscriberID   string    `db:"subscriber_id"`
	ChannelID      string    `db:"channel_id"`
	CreatedAt      time.Time `db:"created_at"`
}
