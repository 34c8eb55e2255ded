package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestDispatchMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(mp)
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	ctx := context.Background()
	m := NewDispatchMetrics()
	m.RecordSubmission(ctx, "consultation", OutcomeAccepted)
	m.RecordSubmission(ctx, "consultation", OutcomeAccepted)
	m.RecordMail(ctx, "operator", OutcomeFailed)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[md.Name] += dp.Value
			}
		}
	}

	assert.Equal(t, int64(2), totals["lead_submissions_total"])
	assert.Equal(t, int64(1), totals["mail_dispatch_total"])
}

func TestDispatchMetrics_NilSafe(t *testing.T) {
	var m *DispatchMetrics
	assert.NotPanics(t, func() {
		m.RecordSubmission(context.Background(), "notify", OutcomeRejected)
		m.RecordMail(context.Background(), "submitter", OutcomeSent)
	})
}
