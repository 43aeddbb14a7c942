package domain

import "time"

// User represents a registered account. A user is also a channel: videos are
// owned by users and subscriptions point from one user to another.
type User struct {
	UserID     string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FullName   string  `json:"fullname"`
	Avatar     string  `json:"avatar"`
	CoverImage *string `json:"coverImage"`
	Timestamps

	// Credentials. Never serialized.
	PasswordHash           string     `json:"-"`
	RefreshTokenHash       *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// WithoutCredentials returns a copy of the user with the password hash and the
// refresh token slot cleared.
func (u User) WithoutCredentials() User {
	u.PasswordHash = ""
	u.RefreshTokenHash = nil
	u.RefreshTokenExpiryTime = nil
	return u
}

// HasRefreshToken reports whether a refresh token is currently stored for the user.
func (u *User) HasRefreshToken() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}

// OwnerSummary is the reduced user projection embedded in video views.
type OwnerSummary struct {
	UserID   string `json:"id"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// ChannelProfile is the public view of a user together with its subscription statistics.
type ChannelProfile struct {
	UserID                    string    `json:"id"`
	FullName                  string    `json:"fullname"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	Avatar                    string    `json:"avatar"`
	CoverImage                *string   `json:"coverImage"`
	CreatedAt                 time.Time `json:"createdAt"`
	SubscriberCount           int64     `json:"subscriberCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}
