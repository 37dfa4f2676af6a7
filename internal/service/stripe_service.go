package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutrigenius/internal/config"
	"nutrigenius/internal/model"
	"nutrigenius/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	customerpkg "github.com/stripe/stripe-go/v82/customer"
	subscriptionpkg "github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ErrInvalidSignature is returned when a webhook payload fails verification.
// The payload must not be trusted without it.
var ErrInvalidSignature = errors.New("invalid signature")

// StripeService manages Stripe integration: customers, checkout sessions,
// subscription listing, and webhook lifecycle ingestion.
type StripeService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentLogRepository
	logger      zerolog.Logger
}

// NewStripeService initializes the Stripe key and returns the service with a
// scoped logger.
func NewStripeService(cfg *config.Config, userRepo repository.UserRepository, paymentRepo repository.PaymentLogRepository, logger zerolog.Logger) *StripeService {
	stripe.Key = cfg.StripeSecretKey
	lg := logger.With().Str("service", "StripeService").Logger()
	return &StripeService{cfg: cfg, userRepo: userRepo, paymentRepo: paymentRepo, logger: lg}
}

// getOrCreateCustomer returns the user's Stripe customer ID, creating and
// persisting one on first use. The customer ID is assigned at most once.
func (s *StripeService) getOrCreateCustomer(ctx context.Context, user *model.User, walletAddress string) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	if email == "" {
		if walletAddress == "" {
			walletAddress = user.OnchainAddress
		}
		email = fmt.Sprintf("%s@nutrigenius.app", walletAddress)
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"userId":        user.ID,
			"walletAddress": walletAddress,
		},
	}
	cust, err := customerpkg.New(params)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create Stripe customer")
		return "", fmt.Errorf("create stripe customer: %w", err)
	}
	if err := s.userRepo.UpdateStripeCustomerID(ctx, user.ID, cust.ID); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to store stripe customer id")
		return "", fmt.Errorf("store stripe customer id: %w", err)
	}
	return cust.ID, nil
}

// CreateCheckoutSession resolves the user's billing customer and creates a
// subscription-mode checkout session for the given price.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, userID, priceID, walletAddress string) (string, string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch user for checkout session")
		return "", "", fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return "", "", fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	customerID, err := s.getOrCreateCustomer(ctx, user, walletAddress)
	if err != nil {
		return "", "", err
	}

	sessParams := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          []*stripe.CheckoutSessionLineItemParams{{Price: stripe.String(priceID), Quantity: stripe.Int64(1)}},
		Mode:               stripe.String(stripe.CheckoutSessionModeSubscription),
		SuccessURL:         stripe.String(s.cfg.AppBaseURL + "/subscription/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(s.cfg.AppBaseURL + "/subscription/cancel"),
		Metadata: map[string]string{
			"userId":        userID,
			"walletAddress": walletAddress,
		},
	}
	sess, err := checkoutsession.New(sessParams)
	if err != nil {
		s.logger.Error().Err(err).Str("price_id", priceID).Msg("Failed to create Stripe checkout session")
		return "", "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.ID, sess.URL, nil
}

// ListActiveSubscriptions returns the user's active subscriptions. A user
// with no billing customer simply has none.
func (s *StripeService) ListActiveSubscriptions(ctx context.Context, userID string) ([]*stripe.Subscription, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch user for subscription listing")
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil || user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		return []*stripe.Subscription{}, nil
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(*user.StripeCustomerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	var subs []*stripe.Subscription
	iter := subscriptionpkg.List(params)
	for iter.Next() {
		subs = append(subs, iter.Subscription())
	}
	if err := iter.Err(); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list Stripe subscriptions")
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if subs == nil {
		subs = []*stripe.Subscription{}
	}
	return subs, nil
}

// HandleEvent verifies and dispatches a webhook payload. Signature failure
// returns ErrInvalidSignature and produces no writes. Unhandled event types
// are accepted and ignored. Status values are copied from the provider
// verbatim; there is no independent state machine.
func (s *StripeService) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.cfg.StripeWebhookSecret)
	if err != nil {
		s.logger.Error().Err(err).Msg("Signature verification failed for Stripe webhook")
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	s.logger.Info().Str("event_type", string(event.Type)).Msg("Stripe webhook received")

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event.Data.Raw)
	case "customer.subscription.created", "customer.subscription.updated":
		return s.handleSubscriptionChanged(ctx, event.Data.Raw, "")
	case "customer.subscription.deleted":
		return s.handleSubscriptionChanged(ctx, event.Data.Raw, "canceled")
	case "invoice.payment_succeeded":
		return s.handleInvoice(ctx, event.Data.Raw, "succeeded")
	case "invoice.payment_failed":
		return s.handleInvoice(ctx, event.Data.Raw, "failed")
	default:
		s.logger.Info().Str("event_type", string(event.Type)).Msg("Unhandled webhook event type")
		return nil
	}
}

func (s *StripeService) handleCheckoutCompleted(ctx context.Context, raw json.RawMessage) error {
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(raw, &cs); err != nil {
		return fmt.Errorf("invalid checkout.session data: %w", err)
	}

	userID := cs.Metadata["userId"]
	if userID == "" {
		s.logger.Error().Str("session_id", cs.ID).Msg("Missing userId in checkout session metadata")
		return nil
	}

	var subID *string
	if cs.Subscription != nil && cs.Subscription.ID != "" {
		subID = stripe.String(cs.Subscription.ID)
	}
	if err := s.userRepo.UpdateSubscription(ctx, userID, "active", subID, nil); err != nil {
		return fmt.Errorf("activate subscription for user %s: %w", userID, err)
	}
	s.logger.Info().Str("user_id", userID).Msg("Subscription activated")
	return nil
}

// handleSubscriptionChanged copies the provider's status and period end onto
// the user. statusOverride replaces the reported status for deletions.
func (s *StripeService) handleSubscriptionChanged(ctx context.Context, raw json.RawMessage, statusOverride string) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return fmt.Errorf("invalid subscription data: %w", err)
	}
	if sub.Customer == nil || sub.Customer.ID == "" {
		s.logger.Error().Str("subscription_id", sub.ID).Msg("Subscription event missing customer")
		return nil
	}

	user, err := s.userRepo.GetByStripeCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("lookup user by customer %s: %w", sub.Customer.ID, err)
	}
	if user == nil {
		// Customers created outside this system are not an error; failing
		// here would make Stripe redeliver forever.
		s.logger.Warn().Str("stripe_customer_id", sub.Customer.ID).Msg("No user found for customer, skipping")
		return nil
	}

	status := string(sub.Status)
	if statusOverride != "" {
		status = statusOverride
	}

	// Items may be absent or unexpanded on lifecycle events.
	var periodEnd *time.Time
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].CurrentPeriodEnd > 0 {
		t := time.Unix(sub.Items.Data[0].CurrentPeriodEnd, 0)
		periodEnd = &t
	}

	var subID *string
	if sub.ID != "" {
		subID = stripe.String(sub.ID)
	}
	if err := s.userRepo.UpdateSubscription(ctx, user.ID, status, subID, periodEnd); err != nil {
		return fmt.Errorf("update subscription for user %s: %w", user.ID, err)
	}
	s.logger.Info().Str("user_id", user.ID).Str("status", status).Msg("Subscription state updated")
	return nil
}

func (s *StripeService) handleInvoice(ctx context.Context, raw json.RawMessage, status string) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(raw, &invoice); err != nil {
		return fmt.Errorf("invalid invoice data: %w", err)
	}
	if invoice.Customer == nil || invoice.Customer.ID == "" {
		s.logger.Error().Str("invoice_id", invoice.ID).Msg("Invoice event missing customer")
		return nil
	}

	user, err := s.userRepo.GetByStripeCustomerID(ctx, invoice.Customer.ID)
	if err != nil {
		return fmt.Errorf("lookup user by customer %s: %w", invoice.Customer.ID, err)
	}
	if user == nil {
		s.logger.Warn().Str("stripe_customer_id", invoice.Customer.ID).Msg("No user found for customer, skipping")
		return nil
	}

	amount := invoice.AmountPaid
	if status == "failed" {
		amount = invoice.AmountDue
	}
	log := &model.PaymentLog{
		UserID:          user.ID,
		StripeInvoiceID: invoice.ID,
		Amount:          amount,
		Currency:        string(invoice.Currency),
		Status:          status,
	}
	if err := s.paymentRepo.Create(ctx, log); err != nil {
		return fmt.Errorf("record payment for user %s: %w", user.ID, err)
	}
	s.logger.Info().Str("user_id", user.ID).Str("status", status).Msg("Payment recorded")
	return nil
}
