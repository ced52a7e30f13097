package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
)

// DefaultPickupWindow is the largest pickup time gap that still chains two orders into one group.
const DefaultPickupWindow = 10 * time.Minute

// ErrOrderIsRequired is returned when the grouper receives a nil order.
var ErrOrderIsRequired = errs.NewValueIsRequiredError("order")

// OverlapPolicy decides what happens when an order is proposed by several candidate batches.
type OverlapPolicy int

const (
	// OverlapKeepAll keeps every candidate batch. An order may appear in several of them.
	OverlapKeepAll OverlapPolicy = iota

	// OverlapRulePriority accepts a candidate only if none of its orders was claimed by an
	// earlier accepted candidate. Earlier rules win over later ones.
	OverlapRulePriority
)

func (p OverlapPolicy) String() string {
	switch p {
	case OverlapKeepAll:
		return "keep_all"
	case OverlapRulePriority:
		return "rule_priority"
	default:
		return fmt.Sprintf("OverlapPolicy(%d)", int(p))
	}
}

// ParseOverlapPolicy accepts the names returned by OverlapPolicy.String.
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch s {
	case "keep_all":
		return OverlapKeepAll, nil
	case "rule_priority":
		return OverlapRulePriority, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("overlap policy", fmt.Errorf("%q is unknown", s))
	}
}

// GrouperConfig tunes the OrderGrouper.
type GrouperConfig struct {
	// PickupWindow is the chaining gap for rules 1-3 and the exact gap for rules 4-5.
	PickupWindow time.Duration

	// CrossCustomerPairing enables rule 5.
	CrossCustomerPairing bool

	OverlapPolicy OverlapPolicy
}

// DefaultGrouperConfig returns a ten minute window, cross-customer pairing enabled and every
// candidate kept.
func DefaultGrouperConfig() GrouperConfig {
	return GrouperConfig{
		PickupWindow:         DefaultPickupWindow,
		CrossCustomerPairing: true,
		OverlapPolicy:        OverlapKeepAll,
	}
}

// Validate checks the window is a positive whole number of minutes and the policy is known.
func (c GrouperConfig) Validate() error {
	var windowErr error
	switch {
	case c.PickupWindow < time.Minute || c.PickupWindow >= kernel.MinutesPerDay*time.Minute:
		windowErr = errs.NewValueIsOutOfRangeError("pickup window", c.PickupWindow,
			time.Minute, kernel.MinutesPerDay*time.Minute-time.Minute)
	case c.PickupWindow%time.Minute != 0:
		windowErr = errs.NewValueIsInvalidErrorWithCause("pickup window",
			fmt.Errorf("%s is not a whole number of minutes", c.PickupWindow))
	}

	var policyErr error
	if c.OverlapPolicy != OverlapKeepAll && c.OverlapPolicy != OverlapRulePriority {
		policyErr = errs.NewValueIsInvalidErrorWithCause("overlap policy",
			fmt.Errorf("%s is unknown", c.OverlapPolicy))
	}

	return errors.Join(windowErr, policyErr)
}

// OrderGrouper proposes candidate batches from a snapshot of pending orders.
//
// Five rules run in a fixed order and each one scans the full order set:
//  1. same kitchen and customer, pickup times chained within the window
//  2. same customer, chained within the window
//  3. same kitchen, chained within the window
//  4. a customer's two orders at one kitchen exactly one window apart
//  5. every ordered pair of orders of different customers where the pickup times are
//     exactly one window apart or the second is not after the first
//
// Rules 1-3 only consider partitions with at least two orders but emit every chained
// group, singletons included. Partitions are visited in the order their key first
// appears in the input, so the output is deterministic.
type OrderGrouper struct {
	cfg GrouperConfig
}

// NewOrderGrouper validates cfg and returns a grouper using it.
func NewOrderGrouper(cfg GrouperConfig) (OrderGrouper, error) {
	if err := cfg.Validate(); err != nil {
		return OrderGrouper{}, err
	}

	return OrderGrouper{cfg: cfg}, nil
}

// Config returns the configuration the grouper was built with.
func (g OrderGrouper) Config() GrouperConfig {
	return g.cfg
}

type kitchenCustomerKey struct {
	kitchenID  string
	customerID string
}

// Group returns the candidate batches for orders. Every order is validated before
// any rule runs; an empty input yields an empty result.
func (g OrderGrouper) Group(orders []*order.Order) ([]*batch.Batch, error) {
	for i, o := range orders {
		if o == nil {
			return nil, fmt.Errorf("order %d: %w", i, ErrOrderIsRequired)
		}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
	}

	acc := newCandidateAccumulator(g.cfg.OverlapPolicy)

	window := g.windowMinutes()
	byKitchenCustomer := partition(orders, func(o *order.Order) kitchenCustomerKey {
		return kitchenCustomerKey{kitchenID: o.KitchenID(), customerID: o.CustomerID()}
	})

	chained := []struct {
		rule       batch.Rule
		partitions [][]*order.Order
	}{
		{batch.RuleKitchenCustomer, byKitchenCustomer},
		{batch.RuleCustomer, partition(orders, (*order.Order).CustomerID)},
		{batch.RuleKitchen, partition(orders, (*order.Order).KitchenID)},
	}

	for _, step := range chained {
		for _, part := range step.partitions {
			if len(part) < 2 {
				continue
			}
			for _, group := range chainByPickup(part, window) {
				if err := acc.add(step.rule, group); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, part := range byKitchenCustomer {
		if len(part) != 2 || absMinutes(part[0], part[1]) != window {
			continue
		}
		if err := acc.add(batch.RuleExactWindowPair, part); err != nil {
			return nil, err
		}
	}

	if g.cfg.CrossCustomerPairing {
		for i, first := range orders {
			for j, second := range orders {
				if i == j || first.CustomerID() == second.CustomerID() {
					continue
				}
				if absMinutes(first, second) != window && second.PickupTime().After(first.PickupTime()) {
					continue
				}
				if err := acc.add(batch.RuleCrossCustomerPair, []*order.Order{first, second}); err != nil {
					return nil, err
				}
			}
		}
	}

	return acc.batches, nil
}

func (g OrderGrouper) windowMinutes() int {
	return int(g.cfg.PickupWindow / time.Minute)
}

// partition splits orders by key, keeping partitions in first-appearance order and
// orders within a partition in input order.
func partition[K comparable](orders []*order.Order, key func(*order.Order) K) [][]*order.Order {
	index := make(map[K]int)
	var parts [][]*order.Order

	for _, o := range orders {
		k := key(o)
		i, ok := index[k]
		if !ok {
			i = len(parts)
			index[k] = i
			parts = append(parts, nil)
		}
		parts[i] = append(parts[i], o)
	}

	return parts
}

// chainByPickup stable-sorts a partition by pickup time and cuts it wherever two
// neighbours are more than window minutes apart.
func chainByPickup(part []*order.Order, window int) [][]*order.Order {
	sorted := slices.Clone(part)
	slices.SortStableFunc(sorted, func(a, b *order.Order) int {
		return a.PickupTime().Minutes() - b.PickupTime().Minutes()
	})

	var groups [][]*order.Order
	current := []*order.Order{sorted[0]}
	for _, o := range sorted[1:] {
		prev := current[len(current)-1]
		if o.PickupTime().MinutesSince(prev.PickupTime()) > window {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, o)
	}

	return append(groups, current)
}

func absMinutes(a, b *order.Order) int {
	d := a.PickupTime().MinutesSince(b.PickupTime())
	if d < 0 {
		return -d
	}

	return d
}

// candidateAccumulator collects batches in emission order and applies the overlap policy.
type candidateAccumulator struct {
	policy  OverlapPolicy
	claimed map[kernel.UUID]struct{}
	batches []*batch.Batch
}

func newCandidateAccumulator(policy OverlapPolicy) *candidateAccumulator {
	return &candidateAccumulator{
		policy:  policy,
		claimed: make(map[kernel.UUID]struct{}),
		batches: []*batch.Batch{},
	}
}

func (a *candidateAccumulator) add(rule batch.Rule, orders []*order.Order) error {
	if a.policy == OverlapRulePriority {
		for _, o := range orders {
			if _, ok := a.claimed[o.ID()]; ok {
				return nil
			}
		}
	}

	b, err := batch.NewBatch(kernel.NewUUID(), rule, orders)
	if err != nil {
		return err
	}

	for _, o := range orders {
		a.claimed[o.ID()] = struct{}{}
	}
	a.batches = append(a.batches, b)

	return nil
}
