// Package directory maintains the bookable-provider list consumed by the
// booking flow. The list is fetched wholesale; there is no pagination and
// no incremental merge.
package directory

import (
	"context"
	"sync"

	"github.com/chairtime/booking-flow/internal/schedapi"
	"github.com/chairtime/booking-flow/pkg/logging"
)

// Lister is the slice of the scheduling API the directory needs.
type Lister interface {
	ListProviders(ctx context.Context) ([]schedapi.Provider, error)
}

// Directory caches the last successfully fetched provider snapshot.
// An empty snapshot means "no providers available yet", not an error state.
type Directory struct {
	api    Lister
	cache  *SnapshotCache
	logger *logging.Logger

	mu   sync.RWMutex
	last []schedapi.Provider
}

// Option configures a Directory.
type Option func(*Directory)

// WithCache attaches a shared snapshot cache so a fresh screen entry can
// skip the network when a recent snapshot exists.
func WithCache(c *SnapshotCache) Option {
	return func(d *Directory) {
		d.cache = c
	}
}

// New creates a provider directory backed by the scheduling API.
func New(api Lister, logger *logging.Logger, opts ...Option) *Directory {
	if logger == nil {
		logger = logging.Default()
	}
	d := &Directory{api: api, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Providers returns the current snapshot, refreshing it first. On fetch
// failure the previous snapshot is kept untouched and the error returned;
// the caller decides whether stale data is still worth showing.
func (d *Directory) Providers(ctx context.Context) ([]schedapi.Provider, error) {
	if err := d.Refresh(ctx); err != nil {
		return d.Snapshot(), err
	}
	return d.Snapshot(), nil
}

// Refresh replaces the snapshot wholesale from cache or API.
func (d *Directory) Refresh(ctx context.Context) error {
	if d.cache != nil {
		if providers, ok, err := d.cache.Get(ctx); err != nil {
			d.logger.Warn("provider cache read failed", "error", err)
		} else if ok {
			d.store(providers)
			return nil
		}
	}

	providers, err := d.api.ListProviders(ctx)
	if err != nil {
		return err
	}
	d.store(providers)

	if d.cache != nil {
		if err := d.cache.Set(ctx, providers); err != nil {
			d.logger.Warn("provider cache write failed", "error", err)
		}
	}
	return nil
}

// Snapshot returns the last-fetched list. Callers treat it as read-only.
func (d *Directory) Snapshot() []schedapi.Provider {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.last
}

// Has reports whether a provider id is present in the current snapshot.
func (d *Directory) Has(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, p := range d.last {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (d *Directory) store(providers []schedapi.Provider) {
	d.mu.Lock()
	d.last = providers
	d.mu.Unlock()
}
