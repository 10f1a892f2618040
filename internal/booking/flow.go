package booking

import (
	"context"
	"sync"
	"time"

	"github.com/chairtime/booking-flow/internal/observability/metrics"
	"github.com/chairtime/booking-flow/internal/schedapi"
	"github.com/chairtime/booking-flow/internal/slots"
	"github.com/chairtime/booking-flow/pkg/logging"
)

// AvailabilityFetcher is the slice of the scheduling API the flow needs.
type AvailabilityFetcher interface {
	DailyAvailability(ctx context.Context, providerID string, date time.Time) ([]schedapi.AvailabilitySlot, error)
}

// Update is what the flow hands the presentation layer after every state
// change: the classified slot groups, the current selection, and whether
// submit is currently allowed.
type Update struct {
	Day           slots.Day
	Selection     Selection
	SubmitEnabled bool
}

// Flow owns one screen's booking state. Changing provider or date triggers
// an availability fetch; each fetch carries the generation number at issue
// time and results from superseded generations are discarded, so the
// displayed slots always reflect the most recent trigger regardless of
// response arrival order.
//
// A Flow is owned by a single screen instance but is safe for concurrent
// use by the fetch goroutines it spawns.
type Flow struct {
	api       AvailabilityFetcher
	submitter *Submitter
	logger    *logging.Logger
	metrics   *metrics.BookingMetrics

	onUpdate  func(Update)
	onError   func(error)
	onOutcome func(*Confirmation, error)

	mu         sync.Mutex
	sel        Selection
	day        slots.Day
	gen        uint64
	submitting bool
	closed     bool
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithUpdateListener registers the presentation callback for display
// updates. Invoked outside the flow's lock.
func WithUpdateListener(fn func(Update)) FlowOption {
	return func(f *Flow) {
		f.onUpdate = fn
	}
}

// WithErrorListener registers the callback for non-fatal fetch errors.
func WithErrorListener(fn func(error)) FlowOption {
	return func(f *Flow) {
		f.onError = fn
	}
}

// WithOutcomeListener registers the callback for submission outcomes.
func WithOutcomeListener(fn func(*Confirmation, error)) FlowOption {
	return func(f *Flow) {
		f.onOutcome = fn
	}
}

// WithFlowMetrics attaches booking metrics.
func WithFlowMetrics(m *metrics.BookingMetrics) FlowOption {
	return func(f *Flow) {
		f.metrics = m
	}
}

// NewFlow creates the state for one booking screen entry: the provider the
// user navigated with, the current moment as the date, no hour chosen.
func NewFlow(api AvailabilityFetcher, submitter *Submitter, providerID string, now time.Time, logger *logging.Logger, opts ...FlowOption) *Flow {
	if logger == nil {
		logger = logging.Default()
	}
	f := &Flow{
		api:       api,
		submitter: submitter,
		logger:    logger,
		sel:       NewSelection(providerID, now),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start issues the initial availability fetch for the entry selection.
func (f *Flow) Start(ctx context.Context) {
	f.mu.Lock()
	f.triggerFetchLocked(ctx)
	f.mu.Unlock()
}

// SelectProvider switches the provider, clears the chosen hour, and
// triggers a fresh availability fetch.
func (f *Flow) SelectProvider(ctx context.Context, id string) {
	f.applyAndFetch(ctx, SelectProvider{ID: id})
}

// SelectDate switches the date, clears the chosen hour, and triggers a
// fresh availability fetch.
func (f *Flow) SelectDate(ctx context.Context, date time.Time) {
	f.applyAndFetch(ctx, SelectDate{Date: date})
}

// SelectHour records the chosen hour. No fetch; availability for the day
// is already displayed.
func (f *Flow) SelectHour(hour int) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.sel = Apply(f.sel, SelectHour{Hour: hour})
	update := f.updateLocked()
	f.mu.Unlock()
	f.notifyUpdate(update)
}

// Selection returns the current selection value.
func (f *Flow) Selection() Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sel
}

// Day returns the currently displayed slot groups.
func (f *Flow) Day() slots.Day {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.day
}

// SubmitEnabled reports whether submit may be invoked: an hour is chosen
// and no submission is in flight.
func (f *Flow) SubmitEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sel.HourChosen() && !f.submitting
}

// Submit performs the booking write for the current selection. Submissions
// are serialized; a second call while one is in flight fails immediately.
// On failure the selection is left intact for a manual retry.
func (f *Flow) Submit(ctx context.Context) (*Confirmation, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.submitting = true
	sel := f.sel
	f.mu.Unlock()

	conf, err := f.submitter.Submit(ctx, sel)

	f.mu.Lock()
	f.submitting = false
	closed := f.closed
	f.mu.Unlock()

	if !closed && f.onOutcome != nil {
		f.onOutcome(conf, err)
	}
	return conf, err
}

// Close detaches the flow from its screen: no further updates, errors, or
// outcomes are delivered and in-flight fetch results are dropped. The
// underlying network calls are left to finish on their own.
func (f *Flow) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *Flow) applyAndFetch(ctx context.Context, a Action) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.sel = Apply(f.sel, a)
	update := f.updateLocked()
	f.triggerFetchLocked(ctx)
	f.mu.Unlock()
	f.notifyUpdate(update)
}

// triggerFetchLocked bumps the fetch generation and launches the fetch.
// Caller holds f.mu.
func (f *Flow) triggerFetchLocked(ctx context.Context) {
	f.gen++
	gen := f.gen
	providerID := f.sel.ProviderID
	date := f.sel.Date
	go f.fetch(ctx, gen, providerID, date)
}

func (f *Flow) fetch(ctx context.Context, gen uint64, providerID string, date time.Time) {
	start := time.Now()
	fetched, err := f.api.DailyAvailability(ctx, providerID, date)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if gen != f.gen {
		f.mu.Unlock()
		f.metrics.ObserveStaleDropped()
		f.logger.Debug("stale availability response dropped", "provider_id", providerID, "generation", gen)
		return
	}
	if err != nil {
		// Keep the previously displayed slots; never show a default list
		// that could present false availability.
		f.mu.Unlock()
		f.metrics.ObserveFetch("error", time.Since(start).Seconds())
		f.logger.Warn("availability fetch failed", "provider_id", providerID, "error", err)
		if f.onError != nil {
			f.onError(&FetchError{Err: err})
		}
		return
	}
	f.day = slots.Classify(fetched)
	update := f.updateLocked()
	f.mu.Unlock()

	f.metrics.ObserveFetch("ok", time.Since(start).Seconds())
	f.notifyUpdate(update)
}

// updateLocked snapshots the presentation state. Caller holds f.mu.
func (f *Flow) updateLocked() Update {
	return Update{
		Day:           f.day,
		Selection:     f.sel,
		SubmitEnabled: f.sel.HourChosen() && !f.submitting,
	}
}

func (f *Flow) notifyUpdate(u Update) {
	if f.onUpdate != nil {
		f.onUpdate(u)
	}
}
