package stripewebhooks

import (
	"careerhub-api/internal/domain/entitlement"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

func handleSubscriptionDeleted(db *gorm.DB, sub *stripe.Subscription) error {
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

	return entitlement.NewStore(db).Put(uid, entitlement.PlanFree, nil)
}
