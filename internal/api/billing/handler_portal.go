package billing

import (
	"net/http"

	"careerhub-api/config"
	"careerhub-api/database"
	"careerhub-api/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalsession "github.com/stripe/stripe-go/v75/billingportal/session"
)

func CreateBillingPortal(c *gin.Context) {
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
		// Cannot manage billing before ever subscribing.
		c.JSON(http.StatusNotFound, gin.H{"error": "no_customer", "message": "No billing customer yet (subscribe first)"})
		return
	}

	portal, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(config.APP_URL + "/account"),
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "message": upstreamMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
