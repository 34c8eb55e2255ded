package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/pkg/email"
	"github.com/securewave/securewave_backend/pkg/lead"
	"github.com/securewave/securewave_backend/pkg/observability"
	"github.com/securewave/securewave_backend/pkg/reqctx"
)

const tracerName = "github.com/securewave/securewave_backend/internal/service/dispatch"

const (
	recipientSubmitter = "submitter"
	recipientOperator  = "operator"
)

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Dispatch validates the payload for the form and sends the thank-you and
	// operator messages. It returns the payload as dispatched (defaults
	// applied). A *MissingFieldsError means nothing was sent; an error
	// wrapping ErrOperatorDispatch means the operator alert failed, whatever
	// happened to the thank-you message.
	//
	// Dispatch returns once the operator alert is settled; the thank-you
	// message is sent in the background and only logged.
	Dispatch(ctx context.Context, form Form, p lead.Payload) (lead.Payload, error)
	// Shutdown waits for background thank-you sends, or until ctx is done.
	Shutdown(ctx context.Context) error
}

// Options carries the startup configuration of the dispatcher.
type Options struct {
	OperatorMailbox string
	TeamName        string
	PhoneRegion     string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		OperatorMailbox: cfg.Notification.OperatorMailbox,
		TeamName:        cfg.Notification.TeamName,
		PhoneRegion:     cfg.Notification.PhoneRegion,
	}
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type dispatchService struct {
	opts    Options
	sender  email.Sender
	logger  *slog.Logger
	metrics *observability.DispatchMetrics

	background conc.WaitGroup
}

func New(opts Options, sender email.Sender, logger *slog.Logger, metrics *observability.DispatchMetrics) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &dispatchService{
		opts:    opts,
		sender:  sender,
		logger:  logger.With("component", "dispatch"),
		metrics: metrics,
	}
}

func (s *dispatchService) Dispatch(ctx context.Context, form Form, p lead.Payload) (lead.Payload, error) {
	if form.ThankYou == nil || form.Alert == nil {
		return p, ErrUnknownForm
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "dispatch."+form.Key)
	defer span.End()

	p = form.applyDefaults(p)

	if missing := p.Absent(form.Required); len(missing) > 0 {
		s.metrics.RecordSubmission(ctx, form.Key, observability.OutcomeRejected)
		span.SetAttributes(attribute.StringSlice("missing_fields", missing))
		return p, &MissingFieldsError{Fields: missing}
	}

	data := email.TemplateData{
		TeamName:        s.opts.TeamName,
		OperatorMailbox: s.opts.OperatorMailbox,
		NormalizedPhone: s.normalizePhone(p.Phone),
	}
	thankYou := form.ThankYou(p, data)
	alert := form.Alert(p, data)

	log := s.logger.With(append([]any{"form", form.Key, "service", p.Service}, reqctx.LogAttrs(ctx)...)...)

	// The thank-you send outlives the request; only the operator outcome is
	// reported.
	bg := context.WithoutCancel(ctx)
	s.background.Go(func() {
		if err := s.send(bg, recipientSubmitter, thankYou); err != nil {
			log.WarnContext(bg, "thank-you email failed", "error", err)
		}
	})

	if err := s.send(ctx, recipientOperator, alert); err != nil {
		s.metrics.RecordSubmission(ctx, form.Key, observability.OutcomeFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "operator notification failed")
		log.ErrorContext(ctx, "operator email failed", "error", err)
		return p, fmt.Errorf("%w: %w", ErrOperatorDispatch, err)
	}

	s.metrics.RecordSubmission(ctx, form.Key, observability.OutcomeAccepted)
	log.InfoContext(ctx, "submission dispatched")
	return p, nil
}

func (s *dispatchService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.background.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for thank-you emails: %w", ctx.Err())
	}
}

func (s *dispatchService) send(ctx context.Context, recipient string, m email.Message) error {
	err := s.sender.Send(ctx, m)
	outcome := observability.OutcomeSent
	if err != nil {
		outcome = observability.OutcomeFailed
	}
	s.metrics.RecordMail(ctx, recipient, outcome)
	return err
}

// normalizePhone returns the E.164 form of phone, or "" if it does not parse
// as a valid number for the configured region.
func (s *dispatchService) normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	num, err := phonenumbers.Parse(phone, strings.ToUpper(s.opts.PhoneRegion))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
