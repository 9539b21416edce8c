package billing

import (
	"errors"
	"testing"

	"careerhub-api/internal/domain/entitlement"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

func TestCheckoutIdempotencyKeyDeterministic(t *testing.T) {
	a := checkoutIdempotencyKey("u1", entitlement.PlanPro)
	b := checkoutIdempotencyKey("u1", entitlement.PlanPro)
	require.Equal(t, a, b)

	require.NotEqual(t, a, checkoutIdempotencyKey("u2", entitlement.PlanPro))
	require.NotEqual(t, a, checkoutIdempotencyKey("u1", entitlement.PlanPremium))

	// Hex sha256: fits Stripe's 255-char idempotency key limit.
	require.Len(t, a, 64)
}

func TestUpstreamMessage(t *testing.T) {
	stripeErr := &stripe.Error{Msg: "No such price: 'price_nope'"}
	require.Equal(t, "No such price: 'price_nope'", upstreamMessage(stripeErr))

	require.Equal(t, "Payment processor request failed", upstreamMessage(errors.New("dial tcp: timeout")))
	require.Equal(t, "Payment processor request failed", upstreamMessage(&stripe.Error{}))
}
