package services_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrouper(t *testing.T, mutate func(*services.GrouperConfig)) services.OrderGrouper {
	t.Helper()
	cfg := services.DefaultGrouperConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := services.NewOrderGrouper(cfg)
	require.NoError(t, err)
	return g
}

func TestOrderGrouper_EmptyInput(t *testing.T) {
	batches, err := newGrouper(t, nil).Group(nil)

	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestOrderGrouper_SameKitchenAndCustomer(t *testing.T) {
	// Given
	first := newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0)
	second := newOrder(t, "kitchenA", "custX", "12:05 PM", 2, 2)

	// When
	batches, err := newGrouper(t, nil).Group([]*order.Order{first, second})

	// Then
	require.NoError(t, err)
	assert.Equal(t,
		[]batch.Rule{batch.RuleKitchenCustomer, batch.RuleCustomer, batch.RuleKitchen},
		rulesOf(batches))
	for _, b := range batches {
		assert.Equal(t, ids(first, second), b.OrderIDs())
	}
}

func TestOrderGrouper_ChainsPickupTimes(t *testing.T) {
	// Given orders of one customer at one kitchen, shuffled
	at1200 := newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0)
	at1208 := newOrder(t, "kitchenA", "custX", "12:08 PM", 0, 0)
	at1216 := newOrder(t, "kitchenA", "custX", "12:16 PM", 0, 0)
	at1230 := newOrder(t, "kitchenA", "custX", "12:30 PM", 0, 0)
	orders := []*order.Order{at1216, at1230, at1200, at1208}

	// When
	batches, err := newGrouper(t, func(c *services.GrouperConfig) {
		c.CrossCustomerPairing = false
	}).Group(orders)

	// Then rule 1 chains the first three and emits the late order on its own
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(batches), 2)
	assert.Equal(t, batch.RuleKitchenCustomer, batches[0].Rule())
	assert.Equal(t, ids(at1200, at1208, at1216), batches[0].OrderIDs())
	assert.Equal(t, batch.RuleKitchenCustomer, batches[1].Rule())
	assert.Equal(t, ids(at1230), batches[1].OrderIDs())
}

func TestOrderGrouper_GapBoundary(t *testing.T) {
	tests := []struct {
		name       string
		second     string
		wantGroups [][]int
	}{
		{name: "gap equal to window chains", second: "12:10 PM", wantGroups: [][]int{{0, 1}}},
		{name: "gap over window splits", second: "12:11 PM", wantGroups: [][]int{{0}, {1}}},
		{name: "same minute chains", second: "12:00 PM", wantGroups: [][]int{{0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := []*order.Order{
				newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0),
				newOrder(t, "kitchenB", "custY", tt.second, 0, 0),
				newOrder(t, "kitchenA", "custX", tt.second, 1, 1),
			}
			// only the custX/kitchenA partition is under test
			partitionOrders := []*order.Order{orders[0], orders[2]}

			batches, err := newGrouper(t, func(c *services.GrouperConfig) {
				c.CrossCustomerPairing = false
			}).Group(orders)

			require.NoError(t, err)
			var rule1 []*batch.Batch
			for _, b := range batches {
				if b.Rule() == batch.RuleKitchenCustomer {
					rule1 = append(rule1, b)
				}
			}
			require.Len(t, rule1, len(tt.wantGroups))
			for i, group := range tt.wantGroups {
				want := make([]*order.Order, 0, len(group))
				for _, idx := range group {
					want = append(want, partitionOrders[idx])
				}
				assert.Equal(t, ids(want...), rule1[i].OrderIDs())
			}
		})
	}
}

func TestOrderGrouper_SingletonPartitionsAreSkipped(t *testing.T) {
	// Given three orders with nothing in common but the pickup minute
	orders := []*order.Order{
		newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0),
		newOrder(t, "kitchenB", "custY", "01:00 PM", 0, 0),
		newOrder(t, "kitchenC", "custZ", "02:00 PM", 0, 0),
	}

	// When
	batches, err := newGrouper(t, func(c *services.GrouperConfig) {
		c.CrossCustomerPairing = false
	}).Group(orders)

	// Then
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestOrderGrouper_CustomerAcrossKitchens(t *testing.T) {
	a := newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0)
	b := newOrder(t, "kitchenB", "custX", "12:04 PM", 4, 0)

	batches, err := newGrouper(t, func(c *services.GrouperConfig) {
		c.CrossCustomerPairing = false
	}).Group([]*order.Order{b, a})

	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, batch.RuleCustomer, batches[0].Rule())
	assert.Equal(t, ids(a, b), batches[0].OrderIDs())
}

func TestOrderGrouper_KitchenPartitionsInFirstAppearanceOrder(t *testing.T) {
	b1 := newOrder(t, "kitchenB", "custX", "12:00 PM", 0, 0)
	a1 := newOrder(t, "kitchenA", "custY", "12:00 PM", 0, 0)
	b2 := newOrder(t, "kitchenB", "custZ", "12:01 PM", 0, 0)
	a2 := newOrder(t, "kitchenA", "custW", "12:02 PM", 0, 0)

	batches, err := newGrouper(t, func(c *services.GrouperConfig) {
		c.CrossCustomerPairing = false
	}).Group([]*order.Order{b1, a1, b2, a2})

	require.NoError(t, err)
	assert.Equal(t, [][]kernel.UUID{ids(b1, b2), ids(a1, a2)}, orderIDsOf(batches))
	assert.Equal(t, []batch.Rule{batch.RuleKitchen, batch.RuleKitchen}, rulesOf(batches))
}

func TestOrderGrouper_ExactWindowPair(t *testing.T) {
	// Given the later order first
	late := newOrder(t, "kitchenA", "custX", "12:10 PM", 0, 0)
	early := newOrder(t, "kitchenA", "custX", "12:00 PM", 2, 0)

	// When
	batches, err := newGrouper(t, func(c *services.GrouperConfig) {
		c.CrossCustomerPairing = false
	}).Group([]*order.Order{late, early})

	// Then rules 1-3 sort by pickup, rule 4 keeps insertion order
	require.NoError(t, err)
	assert.Equal(t,
		[]batch.Rule{batch.RuleKitchenCustomer, batch.RuleCustomer, batch.RuleKitchen, batch.RuleExactWindowPair},
		rulesOf(batches))
	assert.Equal(t, ids(early, late), batches[0].OrderIDs())
	assert.Equal(t, ids(late, early), batches[3].OrderIDs())
}

func TestOrderGrouper_ExactWindowPairNeedsExactlyTwoOrders(t *testing.T) {
	orders := []*order.Order{
		newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0),
		newOrder(t, "kitchenA", "custX", "12:10 PM", 0, 0),
		newOrder(t, "kitchenA", "custX", "12:20 PM", 0, 0),
	}

	batches, err := newGrouper(t, func(c *services.GrouperConfig) {
		c.CrossCustomerPairing = false
	}).Group(orders)

	require.NoError(t, err)
	assert.NotContains(t, rulesOf(batches), batch.RuleExactWindowPair)
}

func TestOrderGrouper_CrossCustomerPairing(t *testing.T) {
	tests := []struct {
		name     string
		firstAt  string
		secondAt string
		want     func(first, second *order.Order) [][]kernel.UUID
	}{
		{
			name:     "second earlier pairs only in reverse",
			firstAt:  "12:00 PM",
			secondAt: "12:05 PM",
			want: func(first, second *order.Order) [][]kernel.UUID {
				return [][]kernel.UUID{ids(second, first)}
			},
		},
		{
			name:     "exactly one window apart pairs both ways",
			firstAt:  "12:00 PM",
			secondAt: "12:10 PM",
			want: func(first, second *order.Order) [][]kernel.UUID {
				return [][]kernel.UUID{ids(first, second), ids(second, first)}
			},
		},
		{
			name:     "same minute pairs both ways",
			firstAt:  "12:00 PM",
			secondAt: "12:00 PM",
			want: func(first, second *order.Order) [][]kernel.UUID {
				return [][]kernel.UUID{ids(first, second), ids(second, first)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given different kitchens and customers so rules 1-4 stay silent
			first := newOrder(t, "kitchenA", "custX", tt.firstAt, 0, 0)
			second := newOrder(t, "kitchenB", "custY", tt.secondAt, 0, 0)

			// When
			batches, err := newGrouper(t, nil).Group([]*order.Order{first, second})

			// Then
			require.NoError(t, err)
			assert.Equal(t, tt.want(first, second), orderIDsOf(batches))
			for _, b := range batches {
				assert.Equal(t, batch.RuleCrossCustomerPair, b.Rule())
			}
		})
	}

	t.Run("same customer never pairs", func(t *testing.T) {
		batches, err := newGrouper(t, nil).Group([]*order.Order{
			newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0),
			newOrder(t, "kitchenB", "custX", "03:00 PM", 0, 0),
		})

		require.NoError(t, err)
		assert.Equal(t, []batch.Rule{batch.RuleCustomer, batch.RuleCustomer}, rulesOf(batches))
	})

	t.Run("disabled", func(t *testing.T) {
		batches, err := newGrouper(t, func(c *services.GrouperConfig) {
			c.CrossCustomerPairing = false
		}).Group([]*order.Order{
			newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0),
			newOrder(t, "kitchenB", "custY", "12:00 PM", 0, 0),
		})

		require.NoError(t, err)
		assert.Empty(t, batches)
	})
}

func TestOrderGrouper_CustomWindow(t *testing.T) {
	first := newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0)
	second := newOrder(t, "kitchenB", "custY", "12:05 PM", 0, 0)

	batches, err := newGrouper(t, func(c *services.GrouperConfig) {
		c.PickupWindow = 5 * time.Minute
	}).Group([]*order.Order{first, second})

	require.NoError(t, err)
	assert.Equal(t, [][]kernel.UUID{ids(first, second), ids(second, first)}, orderIDsOf(batches))
}

func TestOrderGrouper_OverlapPolicy(t *testing.T) {
	first := newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0)
	second := newOrder(t, "kitchenA", "custX", "12:05 PM", 2, 2)
	third := newOrder(t, "kitchenB", "custY", "11:00 AM", 5, 5)
	orders := []*order.Order{first, second, third}

	t.Run("keep all keeps overlapping candidates", func(t *testing.T) {
		batches, err := newGrouper(t, nil).Group(orders)

		require.NoError(t, err)
		// rules 1-3 for the custX pair, then rule 5 pairs third after both custX orders
		assert.Equal(t, []batch.Rule{
			batch.RuleKitchenCustomer, batch.RuleCustomer, batch.RuleKitchen,
			batch.RuleCrossCustomerPair, batch.RuleCrossCustomerPair,
		}, rulesOf(batches))
	})

	t.Run("rule priority keeps the first claim", func(t *testing.T) {
		batches, err := newGrouper(t, func(c *services.GrouperConfig) {
			c.OverlapPolicy = services.OverlapRulePriority
		}).Group(orders)

		require.NoError(t, err)
		assert.Equal(t, [][]kernel.UUID{ids(first, second)}, orderIDsOf(batches))
		assert.Equal(t, []batch.Rule{batch.RuleKitchenCustomer}, rulesOf(batches))
	})
}

func TestOrderGrouper_RejectsMalformedOrders(t *testing.T) {
	valid := newOrder(t, "kitchenA", "custX", "12:00 PM", 0, 0)

	t.Run("nil order", func(t *testing.T) {
		_, err := newGrouper(t, nil).Group([]*order.Order{valid, nil})

		require.ErrorIs(t, err, services.ErrOrderIsRequired)
	})

	t.Run("unconstructed order", func(t *testing.T) {
		_, err := newGrouper(t, nil).Group([]*order.Order{valid, {}})

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestGrouperConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*services.GrouperConfig)
		wantErr error
	}{
		{name: "default", mutate: func(*services.GrouperConfig) {}},
		{name: "zero window", mutate: func(c *services.GrouperConfig) { c.PickupWindow = 0 }, wantErr: errs.ErrValueIsOutOfRange},
		{name: "negative window", mutate: func(c *services.GrouperConfig) { c.PickupWindow = -time.Minute }, wantErr: errs.ErrValueIsOutOfRange},
		{name: "whole day window", mutate: func(c *services.GrouperConfig) { c.PickupWindow = 24 * time.Hour }, wantErr: errs.ErrValueIsOutOfRange},
		{name: "fractional window", mutate: func(c *services.GrouperConfig) { c.PickupWindow = 90 * time.Second }, wantErr: errs.ErrValueIsInvalid},
		{name: "unknown policy", mutate: func(c *services.GrouperConfig) { c.OverlapPolicy = 7 }, wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := services.DefaultGrouperConfig()
			tt.mutate(&cfg)

			_, err := services.NewOrderGrouper(cfg)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseOverlapPolicy(t *testing.T) {
	for _, p := range []services.OverlapPolicy{services.OverlapKeepAll, services.OverlapRulePriority} {
		parsed, err := services.ParseOverlapPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := services.ParseOverlapPolicy("first_wins")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
