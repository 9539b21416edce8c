package billing

import (
	"net/http"

	"careerhub-api/database"
	"careerhub-api/internal/domain/billing"
	"careerhub-api/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	subscription "github.com/stripe/stripe-go/v75/subscription"
)

// CancelSubscription cancels every live subscription of the mapped customer
// and clears the entitlement record. The next plan read falls back to free.
func CancelSubscription(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "User not identified"})
		return
	}

	customerID, ok, err := billing.CustomerIDForUID(database.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to look up customer"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no_customer", "message": "No billing customer yet"})
		return
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
	}
	params.Filters.AddFilter("status", "", "all")

	it := subscription.List(params)
	canceled := 0
	for it.Next() {
		s := it.Subscription()
		switch s.Status {
		case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
			continue
		}
		if _, err := subscription.Cancel(s.ID, nil); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "message": upstreamMessage(err)})
			return
		}
		canceled++
	}
	if err := it.Err(); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "message": upstreamMessage(err)})
		return
	}

	if err := entitlement.NewStore(database.DB).Clear(uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Failed to clear entitlement"})
		return
	}

	log.Info().Str("uid", uid).Int("canceled", canceled).Msg("subscriptions canceled")
	c.JSON(http.StatusOK, gin.H{"plan": entitlement.PlanFree, "canceled": canceled})
}
