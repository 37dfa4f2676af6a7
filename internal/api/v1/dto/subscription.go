package dto

import "github.com/stripe/stripe-go/v82"

// SubscriptionCreateRequest is the POST /subscription/create body.
type SubscriptionCreateRequest struct {
	UserID        string `json:"userId" validate:"required"`
	PriceID       string `json:"priceId" validate:"required"`
	WalletAddress string `json:"walletAddress"`
}

// CheckoutSessionResponse returns the provider-hosted payment flow handle.
type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// SubscriptionListResponse returns the user's active subscriptions.
type SubscriptionListResponse struct {
	Subscriptions         []*stripe.Subscription `json:"subscriptions"`
	HasActiveSubscription bool                   `json:"hasActiveSubscription"`
}
