package stripe

import (
	"strings"

	stripe "github.com/stripe/stripe-go/v75"
)

// Grants reports whether a subscription status grants entitlement. Anything
// other than active/trialing never does, regardless of the priced plan.
func Grants(status stripe.SubscriptionStatus) bool {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return true
	}
	return false
}

// NormalizeStatus folds Stripe's status zoo into the handful of states the
// rest of the app reasons about.
func NormalizeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}
