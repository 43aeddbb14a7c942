package dto

import "github.com/SscSPs/vidtube_backend/internal/core/domain"

// ToggleSubscriptionResponse reports the subscription state after a toggle.
type ToggleSubscriptionResponse struct {
	Subscribed   bool                 `json:"subscribed"`
	Subscription *domain.Subscription `json:"subscription,omitempty"`
}
