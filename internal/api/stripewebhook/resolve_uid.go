package stripewebhooks

import (
	"errors"

	customer "github.com/stripe/stripe-go/v75/customer"
)

// resolveUID returns the uid tagged on the Stripe customer's metadata. The
// tag is the only trusted identity source: uid-looking fields in the event
// body could be forged to grant entitlement to an arbitrary account.
// Returns "" when the customer exists but carries no tag.
func resolveUID(customerID string) (string, error) {
	if customerID == "" {
		return "", errors.New("event carries no customer id")
	}
	cus, err := customer.Get(customerID, nil)
	if err != nil {
		return "", err
	}
	return cus.Metadata["firebaseUid"], nil
}
