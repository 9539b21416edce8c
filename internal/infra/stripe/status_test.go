package stripe

import (
	"testing"

	stripe "github.com/stripe/stripe-go/v75"

	"github.com/stretchr/testify/require"
)

func TestGrants(t *testing.T) {
	granting := []stripe.SubscriptionStatus{
		stripe.SubscriptionStatusActive,
		stripe.SubscriptionStatusTrialing,
	}
	for _, s := range granting {
		require.True(t, Grants(s), string(s))
	}

	denying := []stripe.SubscriptionStatus{
		stripe.SubscriptionStatusPastDue,
		stripe.SubscriptionStatusCanceled,
		stripe.SubscriptionStatusUnpaid,
		stripe.SubscriptionStatusIncomplete,
		stripe.SubscriptionStatusIncompleteExpired,
		stripe.SubscriptionStatus("paused"),
		stripe.SubscriptionStatus("some_future_status"),
	}
	for _, s := range denying {
		require.False(t, Grants(s), string(s))
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"":                   "none",
		"  ":                 "none",
		"active":             "active",
		"trialing":           "trialing",
		"past_due":           "past_due",
		"unpaid":             "past_due",
		"canceled":           "canceled",
		"incomplete_expired": "canceled",
		"paused":             "paused",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeStatus(in), in)
	}
}
