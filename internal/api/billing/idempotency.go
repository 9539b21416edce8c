package billing

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"careerhub-api/internal/domain/entitlement"

	"github.com/stripe/stripe-go/v75"
)

// checkoutIdempotencyKey derives a stable key from (uid, plan). Two rapid
// checkout attempts for the same pair carry the same key, so the processor
// returns the first session instead of creating a second one.
func checkoutIdempotencyKey(uid string, plan entitlement.Plan) string {
	sum := sha256.Sum256([]byte("checkout:" + uid + ":" + string(plan)))
	return hex.EncodeToString(sum[:])
}

// upstreamMessage extracts the processor's message when one exists, so
// callers can tell user-input errors from transient infrastructure ones.
func upstreamMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return "Payment processor request failed"
}
