package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()

	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestOrderMetricsRecordCheckouts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.IncOrderCreated(35.46)
	m.IncOrderCreated(18.48)
	m.IncCartMutation("add")
	m.IncCartMutation("Add")
	m.IncCartMutation("remove")

	assert.Equal(t, 2.0, counterValue(t, m.ordersCreated))
	assert.Equal(t, 2.0, counterValue(t, m.cartMutations.WithLabelValues("add")))
	assert.Equal(t, 1.0, counterValue(t, m.cartMutations.WithLabelValues("remove")))

	var histogram dto.Metric
	require.NoError(t, m.orderTotals.Write(&histogram))
	assert.Equal(t, uint64(2), histogram.GetHistogram().GetSampleCount())
}

func TestJobMetricsRecordOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewJobMetrics(reg)

	m.IncSuccess("order_progression")
	m.IncSuccess("order_progression")
	m.IncFailure("cart_cleanup")
	m.ObserveDuration("order_progression", 250*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, m.success.WithLabelValues("order_progression")))
	assert.Equal(t, 1.0, counterValue(t, m.failure.WithLabelValues("cart_cleanup")))
}

func TestMetricsAreNilSafe(t *testing.T) {
	var orderMetrics *OrderMetrics
	orderMetrics.IncOrderCreated(10)
	orderMetrics.IncCartMutation("add")

	var jobMetrics *JobMetrics
	jobMetrics.IncSuccess("job")
	jobMetrics.IncFailure("job")
	jobMetrics.ObserveDuration("job", time.Second)

	// Unregistered instances are also inert.
	empty := NewOrderMetrics(nil)
	empty.IncOrderCreated(10)
	emptyJobs := NewJobMetrics(nil)
	emptyJobs.IncSuccess("job")
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "order_progression", normalizeLabel(" Order Progression "))
	assert.Equal(t, "unknown", normalizeLabel("   "))
}
