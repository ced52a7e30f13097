package batch

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Rule identifies the grouping rule that proposed a batch.
// Rules are applied by the grouper in ascending order.
type Rule int

const (
	// RuleUnknown represents an undefined rule and is never valid.
	RuleUnknown Rule = iota

	// RuleKitchenCustomer groups orders of one customer from one kitchen.
	RuleKitchenCustomer

	// RuleCustomer groups orders of one customer across kitchens.
	RuleCustomer

	// RuleKitchen groups orders of one kitchen across customers.
	RuleKitchen

	// RuleExactWindowPair pairs the two orders of a customer at a kitchen whose
	// pickup times are exactly one window apart.
	RuleExactWindowPair

	// RuleCrossCustomerPair pairs orders of different customers.
	RuleCrossCustomerPair
)

func getRuleStrings() map[Rule]string {
	return map[Rule]string{
		RuleUnknown:           "unknown",
		RuleKitchenCustomer:   "kitchen_customer",
		RuleCustomer:          "customer",
		RuleKitchen:           "kitchen",
		RuleExactWindowPair:   "exact_window_pair",
		RuleCrossCustomerPair: "cross_customer_pair",
	}
}

// Validate rejects RuleUnknown and values outside the declared range.
func (r Rule) Validate() error {
	if r <= RuleUnknown || r > RuleCrossCustomerPair {
		return errs.NewValueIsInvalidErrorWithCause("rule", fmt.Errorf("%d is not a grouping rule", int(r)))
	}

	return nil
}

func (r Rule) String() string {
	if s, ok := getRuleStrings()[r]; ok {
		return s
	}

	return "unknown"
}

// ParseRule is the inverse of Rule.String for valid rules.
func ParseRule(s string) (Rule, error) {
	for rule, name := range getRuleStrings() {
		if rule != RuleUnknown && name == s {
			return rule, nil
		}
	}

	return RuleUnknown, errs.NewValueIsInvalidErrorWithCause("rule", fmt.Errorf("%q is not a grouping rule", s))
}
