package services_test

import (
	"testing"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, x, y float64) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(x, y)
	require.NoError(t, err)
	return location
}

func newOrder(t *testing.T, kitchenID, customerID, pickup string, x, y float64) *order.Order {
	t.Helper()
	pickupTime, err := kernel.ParseTimeOfDay(pickup)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kitchenID, customerID, pickupTime, mustLocation(t, x, y))
	require.NoError(t, err)
	return o
}

func newCourier(t *testing.T, name string, x, y float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, mustLocation(t, x, y))
	require.NoError(t, err)
	return c
}

func batchAt(t *testing.T, x, y float64) *batch.Batch {
	t.Helper()
	o := newOrder(t, "kitchenA", "custX", "12:00 PM", x, y)
	b, err := batch.RestoreBatch(kernel.NewUUID(), batch.RuleKitchenCustomer, []*order.Order{o}, mustLocation(t, x, y))
	require.NoError(t, err)
	return b
}

func orderIDsOf(batches []*batch.Batch) [][]kernel.UUID {
	ids := make([][]kernel.UUID, 0, len(batches))
	for _, b := range batches {
		ids = append(ids, b.OrderIDs())
	}
	return ids
}

func rulesOf(batches []*batch.Batch) []batch.Rule {
	rules := make([]batch.Rule, 0, len(batches))
	for _, b := range batches {
		rules = append(rules, b.Rule())
	}
	return rules
}

func ids(orders ...*order.Order) []kernel.UUID {
	result := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		result = append(result, o.ID())
	}
	return result
}
