package stripe

import (
	"careerhub-api/config"
	"careerhub-api/internal/domain/entitlement"
)

// PriceMap is the static association between billable Stripe price ids and
// internal plan names. Loaded once at process start, read-only afterwards.
type PriceMap struct {
	planByPrice map[string]entitlement.Plan
	priceByPlan map[entitlement.Plan]string
}

func NewPriceMap(prices map[entitlement.Plan]string) *PriceMap {
	m := &PriceMap{
		planByPrice: make(map[string]entitlement.Plan),
		priceByPlan: make(map[entitlement.Plan]string),
	}
	for plan, priceID := range prices {
		if priceID == "" {
			continue
		}
		m.planByPrice[priceID] = plan
		m.priceByPlan[plan] = priceID
	}
	return m
}

// PlanFor maps a Stripe price id to its plan. Unknown price ids yield
// ok=false; callers must treat that as "no entitlement change", never as a
// silent downgrade to an invalid value.
func (m *PriceMap) PlanFor(priceID string) (entitlement.Plan, bool) {
	plan, ok := m.planByPrice[priceID]
	return plan, ok
}

// PriceFor is the inverse lookup used when starting a checkout.
func (m *PriceMap) PriceFor(plan entitlement.Plan) (string, bool) {
	priceID, ok := m.priceByPlan[plan]
	return priceID, ok
}

// Prices is the process-wide map, populated by LoadPrices after config.
var Prices = NewPriceMap(nil)

func LoadPrices() {
	Prices = NewPriceMap(map[entitlement.Plan]string{
		entitlement.PlanTrial:     config.STRIPE_PRICE_TRIAL,
		entitlement.PlanEssential: config.STRIPE_PRICE_ESSENTIAL,
		entitlement.PlanPro:       config.STRIPE_PRICE_PRO,
		entitlement.PlanPremium:   config.STRIPE_PRICE_PREMIUM,
	})
}
