package stripewebhooks

import (
	"errors"
	"time"

	"careerhub-api/internal/domain/entitlement"
	stripeinfra "careerhub-api/internal/infra/stripe"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleSubscriptionChanged covers created and updated events; both reduce
// to "what does this subscription's current state entitle the user to".
func handleSubscriptionChanged(db *gorm.DB, sub *stripe.Subscription) error {
	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	uid, err := resolveUID(customerID)
	if err != nil {
		return err
	}
	if uid == "" {
		log.Warn().Str("subscription_id", sub.ID).Msg("customer has no uid tag, dropping event")
		return nil
	}

	store := entitlement.NewStore(db)

	// An inactive subscription never grants entitlement, whatever its price.
	if !stripeinfra.Grants(sub.Status) {
		log.Info().Str("uid", uid).
			Str("status", stripeinfra.NormalizeStatus(string(sub.Status))).
			Msg("subscription inactive, reverting to free")
		return store.Put(uid, entitlement.PlanFree, nil)
	}

	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return errors.New("subscription missing price item")
	}
	priceID := sub.Items.Data[0].Price.ID

	plan, ok := stripeinfra.Prices.PlanFor(priceID)
	if !ok {
		log.Warn().Str("price_id", priceID).Str("uid", uid).
			Msg("unknown price id, entitlement unchanged")
		return nil
	}

	var trialEndsAt *time.Time
	if sub.Status == stripe.SubscriptionStatusTrialing && sub.TrialEnd > 0 {
		t := time.Unix(sub.TrialEnd, 0)
		trialEndsAt = &t
	}

	return store.Put(uid, plan, trialEndsAt)
}
