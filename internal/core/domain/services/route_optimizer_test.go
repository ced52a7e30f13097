package services_test

import (
	"testing"

	"lastmile/internal/core/domain/model/batch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteOptimizer_Optimize(t *testing.T) {
	tests := []struct {
		name   string
		points [][2]float64
		wantX  float64
		wantY  float64
	}{
		{name: "two points", points: [][2]float64{{0, 0}, {2, 2}}, wantX: 1, wantY: 1},
		{name: "single point", points: [][2]float64{{3.5, -1}}, wantX: 3.5, wantY: -1},
		{name: "three points", points: [][2]float64{{0, 0}, {1, 0}, {0, 1}}, wantX: 1.0 / 3, wantY: 1.0 / 3},
		{name: "duplicates weigh in", points: [][2]float64{{0, 0}, {0, 0}, {3, 3}}, wantX: 1, wantY: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			orders := make([]*order.Order, 0, len(tt.points))
			for _, p := range tt.points {
				orders = append(orders, newOrder(t, "kitchenA", "custX", "12:00 PM", p[0], p[1]))
			}
			b, err := batch.NewBatch(kernel.NewUUID(), batch.RuleKitchenCustomer, orders)
			require.NoError(t, err)

			// When
			err = services.NewRouteOptimizer().Optimize(b)

			// Then
			require.NoError(t, err)
			destination, ok := b.Destination()
			require.True(t, ok)
			assert.InDelta(t, tt.wantX, destination.X(), 1e-9)
			assert.InDelta(t, tt.wantY, destination.Y(), 1e-9)
		})
	}
}

func TestRouteOptimizer_EmptyBatch(t *testing.T) {
	optimizer := services.NewRouteOptimizer()

	t.Run("zero value batch", func(t *testing.T) {
		b := &batch.Batch{}

		err := optimizer.Optimize(b)

		require.ErrorIs(t, err, services.ErrEmptyBatch)
		assert.False(t, b.HasDestination())
	})

	t.Run("nil batch", func(t *testing.T) {
		require.ErrorIs(t, optimizer.Optimize(nil), services.ErrEmptyBatch)
	})
}

func TestRouteOptimizer_OptimizeAll(t *testing.T) {
	o := newOrder(t, "kitchenA", "custX", "12:00 PM", 4, 2)
	good, err := batch.NewBatch(kernel.NewUUID(), batch.RuleKitchen, []*order.Order{o})
	require.NoError(t, err)

	t.Run("sets every destination", func(t *testing.T) {
		require.NoError(t, services.NewRouteOptimizer().OptimizeAll([]*batch.Batch{good}))
		assert.True(t, good.HasDestination())
	})

	t.Run("stops at the first empty batch", func(t *testing.T) {
		err := services.NewRouteOptimizer().OptimizeAll([]*batch.Batch{good, {}})

		require.ErrorIs(t, err, services.ErrEmptyBatch)
		assert.Contains(t, err.Error(), "batch 1")
	})
}

func TestCentroid(t *testing.T) {
	_, err := services.Centroid(nil)
	require.ErrorIs(t, err, services.ErrEmptyBatch)

	_, err = services.Centroid([]kernel.Location{{}})
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)

	c, err := services.Centroid([]kernel.Location{mustLocation(t, -2, 4), mustLocation(t, 2, 0)})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, c.X(), 1e-9)
	assert.InDelta(t, 2.0, c.Y(), 1e-9)
}
