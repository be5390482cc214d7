package metrics_test

import (
	"testing"
	"time"

	"dispatch/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewDispatch(reg)

	m.Outcome("assigned", 10*time.Millisecond)
	m.Outcome("assigned", 20*time.Millisecond)
	m.Outcome("no_match", time.Millisecond)
	m.Conflict("worker")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"dispatch_assignments_total",
		"dispatch_assignment_conflicts_total",
		"dispatch_assignment_duration_seconds",
	}, names)

	count, err := testutil.GatherAndCount(reg, "dispatch_assignments_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestJobs(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewJobs(reg)

	m.Run("dispatch_sweep", "success")
	m.Run("dispatch_sweep", "failed")

	count, err := testutil.GatherAndCount(reg, "dispatch_job_executions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNew_RegistersOncePerRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewHTTP(reg)

	assert.Panics(t, func() { metrics.NewHTTP(reg) })
}
