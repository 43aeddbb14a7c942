package domain

import "time"

// Subscription records that SubscriberID follows the channel of ChannelID.
type Subscription struct {
	SubscriptionID string    `json:"id"`
	SubscriberID   string    `json:"subscriberId"`
	ChannelID      string    `json:"channelId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SubscriptionWithUser pairs a subscription with the public view of the other party
// (the subscriber when listing a channel's subscribers, the channel when listing a
// user's subscriptions).
type SubscriptionWithUser struct {
	SubscriptionID string       `json:"id"`
	User           OwnerSummary `json:"user"`
	CreatedAt      time.Time    `json:"createdAt"`
}
