package booking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/chairtime/booking-flow/internal/observability/metrics"
	"github.com/chairtime/booking-flow/internal/schedapi"
	"github.com/chairtime/booking-flow/pkg/logging"
)

var bookingTracer = otel.Tracer("chairtime.internal.booking")

const defaultSubmitTimeout = 15 * time.Second

// AppointmentCreator is the slice of the scheduling API the submitter needs.
type AppointmentCreator interface {
	CreateAppointment(ctx context.Context, providerID string, at time.Time) (*schedapi.Appointment, error)
}

// Submitter converts a completed selection into a booking request and
// performs exactly one write call. No retry; a failed call surfaces a
// SubmissionError immediately and leaves the selection to the caller
// untouched, so a manual retry keeps the provider/date/hour context.
type Submitter struct {
	api     AppointmentCreator
	timeout time.Duration
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithSubmitTimeout overrides the write-call timeout.
func WithSubmitTimeout(d time.Duration) SubmitterOption {
	return func(s *Submitter) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSubmitterMetrics attaches booking metrics.
func WithSubmitterMetrics(m *metrics.BookingMetrics) SubmitterOption {
	return func(s *Submitter) {
		s.metrics = m
	}
}

// NewSubmitter creates a booking submitter.
func NewSubmitter(api AppointmentCreator, logger *logging.Logger, opts ...SubmitterOption) *Submitter {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Submitter{api: api, timeout: defaultSubmitTimeout, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit books the selected slot. The instant sent is the selection date's
// calendar day combined with the chosen hour, minute fixed to zero. On
// success the returned confirmation carries that exact instant.
func (s *Submitter) Submit(ctx context.Context, sel Selection) (*Confirmation, error) {
	if !sel.HourChosen() {
		s.metrics.ObserveSubmission("precondition")
		return nil, ErrHourNotChosen
	}

	at := time.Date(sel.Date.Year(), sel.Date.Month(), sel.Date.Day(), sel.Hour, 0, 0, 0, sel.Date.Location())

	ctx, span := bookingTracer.Start(ctx, "booking.submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.provider_id", sel.ProviderID),
		attribute.Int("booking.hour", sel.Hour),
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.api.CreateAppointment(ctx, sel.ProviderID, at); err != nil {
		span.RecordError(err)
		s.metrics.ObserveSubmission("failed")
		s.logger.Warn("booking submission failed", "provider_id", sel.ProviderID, "hour", sel.Hour, "error", err)
		return nil, &SubmissionError{Err: err}
	}

	s.metrics.ObserveSubmission("confirmed")
	s.logger.Info("booking confirmed", "provider_id", sel.ProviderID, "at", at)
	return &Confirmation{Time: at}, nil
}
