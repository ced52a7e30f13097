package metrics_test

import (
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefault_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.RegisterDefault()
		metrics.RegisterDefault()
	})

	families, err := metrics.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestDispatchObserver(t *testing.T) {
	observer := metrics.DispatchObserver{}
	runs := testutil.ToFloat64(metrics.DispatchRuns.WithLabelValues(commands.TriggerHTTP, "success"))
	failures := testutil.ToFloat64(metrics.DispatchRuns.WithLabelValues(commands.TriggerSchedule, "failure"))
	assigned := testutil.ToFloat64(metrics.DispatchBatches.WithLabelValues("assigned"))
	unassigned := testutil.ToFloat64(metrics.DispatchBatches.WithLabelValues("unassigned"))

	observer.ObserveDispatch(commands.TriggerHTTP, commands.DispatchResult{
		Candidates: 5,
		Assigned:   3,
		Unassigned: 2,
	}, 15*time.Millisecond)
	observer.ObserveDispatchFailure(commands.TriggerSchedule)

	assert.InDelta(t, runs+1, testutil.ToFloat64(metrics.DispatchRuns.WithLabelValues(commands.TriggerHTTP, "success")), 1e-9)
	assert.InDelta(t, failures+1, testutil.ToFloat64(metrics.DispatchRuns.WithLabelValues(commands.TriggerSchedule, "failure")), 1e-9)
	assert.InDelta(t, assigned+3, testutil.ToFloat64(metrics.DispatchBatches.WithLabelValues("assigned")), 1e-9)
	assert.InDelta(t, unassigned+2, testutil.ToFloat64(metrics.DispatchBatches.WithLabelValues("unassigned")), 1e-9)
}
