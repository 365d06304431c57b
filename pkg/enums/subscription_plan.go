package enums

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SubscriptionPlan is the tier a user pays for.
type SubscriptionPlan string

const (
	SubscriptionPlanBasic    SubscriptionPlan = "BASIC"
	SubscriptionPlanStandard SubscriptionPlan = "STANDARD"
	SubscriptionPlanPremium  SubscriptionPlan = "PREMIUM"
)

var validSubscriptionPlans = []SubscriptionPlan{
	SubscriptionPlanBasic,
	SubscriptionPlanStandard,
	SubscriptionPlanPremium,
}

var monthlyPrices = map[SubscriptionPlan]decimal.Decimal{
	SubscriptionPlanBasic:    decimal.RequireFromString("7.99"),
	SubscriptionPlanStandard: decimal.RequireFromString("10.99"),
	SubscriptionPlanPremium:  decimal.RequireFromString("13.99"),
}

func AllSubscriptionPlans() []SubscriptionPlan {
	return append([]SubscriptionPlan(nil), validSubscriptionPlans...)
}

func (p SubscriptionPlan) String() string {
	return string(p)
}

func (p SubscriptionPlan) IsValid() bool {
	_, ok := monthlyPrices[p]
	return ok
}

// MonthlyPrice returns the plan price, zero for unknown plans.
func (p SubscriptionPlan) MonthlyPrice() decimal.Decimal {
	return monthlyPrices[p]
}

func ParseSubscriptionPlan(value string) (SubscriptionPlan, error) {
	for _, candidate := range validSubscriptionPlans {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription plan %q", value)
}
