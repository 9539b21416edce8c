package entitlement

// Plan is the entitlement level granted to a user. The set is closed:
// nothing outside these values is ever written to the store.
type Plan string

const (
	PlanFree      Plan = "free"
	PlanTrial     Plan = "trial"
	PlanEssential Plan = "essential"
	PlanPro       Plan = "pro"
	PlanPremium   Plan = "premium"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanTrial, PlanEssential, PlanPro, PlanPremium:
		return true
	}
	return false
}

// ParsePlan normalizes a client-supplied plan name. Unknown input yields
// ok=false; callers must not fall back to a default here.
func ParsePlan(s string) (Plan, bool) {
	p := Plan(s)
	if p.Valid() {
		return p, true
	}
	return "", false
}
