package billing

import (
	"net/http"

	"careerhub-api/config"
	"careerhub-api/database"
	"careerhub-api/internal/domain/billing"
	"careerhub-api/internal/domain/entitlement"
	stripeinfra "careerhub-api/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	customer "github.com/stripe/stripe-go/v75/customer"
)

func CreateCheckoutSession(c *gin.Context) {
	var body struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Plan == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_request", "message": "Missing plan"})
		return
	}

	plan, ok := entitlement.ParsePlan(body.Plan)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_plan", "message": "Unknown plan: " + body.Plan})
		return
	}
	priceID, ok := stripeinfra.Prices.PriceFor(plan)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_plan", "message": "Plan is not purchasable: " + body.Plan})
		return
	}

	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "User not identified"})
		return
	}
	email := c.GetString("email")

	customerID, err := ensureCustomer(uid, email)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "message": upstreamMessage(err)})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/account?checkout=success"),
		CancelURL:  stripe.String(config.APP_URL + "/account?checkout=canceled"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(customerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(uid),

		// Second line of defense: the customer carries the uid tag already,
		// tagging the session too keeps reconciliation possible if the
		// customer record is ever touched by hand.
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"firebaseUid": uid},
		},
	}
	params.AddMetadata("firebaseUid", uid)
	// Deterministic key: a double-clicked subscribe button replays the same
	// request instead of opening a second session.
	params.SetIdempotencyKey(checkoutIdempotencyKey(uid, plan))

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "message": upstreamMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "sessionId": s.ID})
}

// ensureCustomer returns the Stripe customer for uid, creating and mapping
// one on first use. The metadata tag is the only mechanism by which a later
// webhook can be traced back to the user, so creation never omits it.
func ensureCustomer(uid, email string) (string, error) {
	customerID, ok, err := billing.CustomerIDForUID(database.DB, uid)
	if err != nil {
		return "", err
	}
	if ok {
		return customerID, nil
	}

	cus, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"firebaseUid": uid,
		},
	})
	if err != nil {
		return "", err
	}

	if err := billing.SaveCustomerMapping(database.DB, uid, cus.ID); err != nil {
		return "", err
	}

	// Re-read in case a concurrent first checkout won the insert; the
	// mapping is immutable, so whatever is stored is the customer to use.
	customerID, _, err = billing.CustomerIDForUID(database.DB, uid)
	if err != nil {
		return "", err
	}
	return customerID, nil
}
