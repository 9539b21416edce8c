package stripe

import (
	"testing"

	"careerhub-api/internal/domain/entitlement"

	"github.com/stretchr/testify/require"
)

func TestPriceMapLookups(t *testing.T) {
	m := NewPriceMap(map[entitlement.Plan]string{
		entitlement.PlanEssential: "price_essential",
		entitlement.PlanPro:       "price_pro",
		entitlement.PlanPremium:   "", // unconfigured plan is not purchasable
	})

	plan, ok := m.PlanFor("price_pro")
	require.True(t, ok)
	require.Equal(t, entitlement.PlanPro, plan)

	priceID, ok := m.PriceFor(entitlement.PlanEssential)
	require.True(t, ok)
	require.Equal(t, "price_essential", priceID)

	_, ok = m.PlanFor("price_unknown")
	require.False(t, ok)

	_, ok = m.PriceFor(entitlement.PlanPremium)
	require.False(t, ok)

	_, ok = m.PriceFor(entitlement.PlanFree)
	require.False(t, ok)
}

func TestEmptyPriceMap(t *testing.T) {
	m := NewPriceMap(nil)

	_, ok := m.PlanFor("price_pro")
	require.False(t, ok)
}
