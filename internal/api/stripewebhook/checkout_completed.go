package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"careerhub-api/internal/domain/billing"
	"careerhub-api/internal/domain/entitlement"
	stripeinfra "careerhub-api/internal/infra/stripe"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

func handleCheckoutSessionCompleted(db *gorm.DB, session *stripe.CheckoutSession) error {
	// The delivered session is thin; re-fetch with expansions to get the
	// purchased price and the customer's metadata in one call.
	full, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("line_items"),
				stripe.String("customer"),
				stripe.String("subscription"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("fetch expanded checkout session: %w", err)
	}

	priceID := priceIDFromSession(full)
	if priceID == "" {
		return errors.New("checkout session has no price")
	}
	plan, ok := stripeinfra.Prices.PlanFor(priceID)
	if !ok {
		log.Warn().Str("price_id", priceID).Str("session_id", full.ID).
			Msg("unknown price id, entitlement unchanged")
		return nil
	}

	uid := ""
	if full.Customer != nil {
		uid = full.Customer.Metadata["firebaseUid"]
	}
	if uid == "" {
		// A customer without the tag (e.g. created by hand in the
		// dashboard) cannot be attributed; drop and let entitlement
		// self-heal on the user's next transaction.
		log.Warn().Str("session_id", full.ID).Msg("customer has no uid tag, dropping event")
		return nil
	}

	var trialEndsAt *time.Time
	if full.Subscription != nil && full.Subscription.TrialEnd > 0 {
		t := time.Unix(full.Subscription.TrialEnd, 0)
		trialEndsAt = &t
	}

	if err := entitlement.NewStore(db).Put(uid, plan, trialEndsAt); err != nil {
		return fmt.Errorf("write entitlement for %s: %w", uid, err)
	}

	payment := &billing.Payment{
		UID:             uid,
		StripeSessionID: full.ID,
		Plan:            string(plan),
		AmountCents:     full.AmountTotal,
		Currency:        string(full.Currency),
	}
	if full.Subscription != nil && full.Subscription.ID != "" {
		payment.StripeSubscriptionID = stripe.String(full.Subscription.ID)
	}
	// History is best-effort; the entitlement write above already stuck.
	if err := billing.RecordPayment(db, payment); err != nil {
		log.Error().Err(err).Str("session_id", full.ID).Msg("failed to record payment")
	}

	return nil
}

func priceIDFromSession(s *stripe.CheckoutSession) string {
	if s.LineItems != nil && len(s.LineItems.Data) > 0 && s.LineItems.Data[0].Price != nil {
		return s.LineItems.Data[0].Price.ID
	}
	if s.Subscription != nil && s.Subscription.Items != nil &&
		len(s.Subscription.Items.Data) > 0 && s.Subscription.Items.Data[0].Price != nil {
		return s.Subscription.Items.Data[0].Price.ID
	}
	return ""
}
