package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels recorded on dispatch metrics.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeSent     = "sent"
)

// DispatchMetrics counts form submissions and outbound notification mails.
// It records into the global meter provider, which is a no-op until
// InitTelemetry installs a real one.
type DispatchMetrics struct {
	submissions metric.Int64Counter
	mails       metric.Int64Counter
}

func NewDispatchMetrics() *DispatchMetrics {
	meter := otel.Meter(tracerName)

	submissions, _ := meter.Int64Counter(
		"lead_submissions_total",
		metric.WithDescription("Form submissions received, by form and outcome"),
		metric.WithUnit("{submission}"),
	)
	mails, _ := meter.Int64Counter(
		"mail_dispatch_total",
		metric.WithDescription("Notification mails handed to the transport, by recipient and outcome"),
		metric.WithUnit("{message}"),
	)

	return &DispatchMetrics{submissions: submissions, mails: mails}
}

func (m *DispatchMetrics) RecordSubmission(ctx context.Context, form, outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("form", form),
		attribute.String("outcome", outcome),
	))
}

func (m *DispatchMetrics) RecordMail(ctx context.Context, recipient, outcome string) {
	if m == nil || m.mails == nil {
		return
	}
	m.mails.Add(ctx, 1, metric.WithAttributes(
		attribute.String("recipient", recipient),
		attribute.String("outcome", outcome),
	))
}
