package stripewebhooks

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"careerhub-api/config"
	"careerhub-api/database"
	stripeinfra "careerhub-api/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

const maxWebhookBody = 65536

// StripeWebhook is the single entry point for processor events. The raw
// body is signature material and must be verified before any JSON parsing.
// After a valid signature the handler always acks 200: unacknowledged
// deliveries would pile up as external retries for payloads that fail
// deterministically.
func StripeWebhook(c *gin.Context) {
	payload, err := readWebhookBody(c, maxWebhookBody)
	if err != nil {
		// A body that cannot be read (oversized, truncated) cannot be
		// signature-checked either; this is the one rejection issued
		// before verification and it is not signature_invalid.
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Error reading request body"})
		return
	}

	if _, err := stripeinfra.VerifySignature(payload, c.GetHeader("Stripe-Signature"), config.STRIPE_WEBHOOK_SECRET, time.Now()); err != nil {
		log.Warn().Err(err).Msg("webhook signature verification failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "signature_invalid", "message": "Signature verification failed"})
		return
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		// Signed but unparseable; ack so the processor stops redelivering.
		log.Error().Err(err).Msg("webhook payload is not valid JSON")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := reconcile(database.DB, &event); err != nil {
		log.Error().Err(err).
			Str("event_id", event.ID).
			Str("event_type", string(event.Type)).
			Msg("webhook reconciliation failed")
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// reconcile routes one verified event to its terminal action. Event types
// the processor adds over time land in the default no-op arm.
func reconcile(db *gorm.DB, event *stripe.Event) error {
	if event.Data == nil {
		return nil
	}
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return handleCheckoutSessionCompleted(db, &session)

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return handleSubscriptionChanged(db, &sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return handleSubscriptionDeleted(db, &sub)

	default:
		log.Debug().Str("event_type", string(event.Type)).Msg("ignoring webhook event")
		return nil
	}
}

func readWebhookBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
