package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chairtime/booking-flow/internal/schedapi"
)

type fakeLister struct {
	providers []schedapi.Provider
	err       error
	calls     int
}

func (f *fakeLister) ListProviders(ctx context.Context) ([]schedapi.Provider, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.providers, nil
}

func TestProvidersRefreshesWholesale(t *testing.T) {
	lister := &fakeLister{providers: []schedapi.Provider{{ID: "p1", Name: "John"}}}
	d := New(lister, nil)

	providers, err := d.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "p1", providers[0].ID)

	lister.providers = []schedapi.Provider{{ID: "p2", Name: "Ana"}}
	providers, err = d.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "p2", providers[0].ID)
	assert.False(t, d.Has("p1"))
	assert.True(t, d.Has("p2"))
}

func TestProvidersFailureKeepsPreviousSnapshot(t *testing.T) {
	lister := &fakeLister{providers: []schedapi.Provider{{ID: "p1"}}}
	d := New(lister, nil)

	_, err := d.Providers(context.Background())
	require.NoError(t, err)

	lister.err = errors.New("network down")
	providers, err := d.Providers(context.Background())
	assert.Error(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "p1", providers[0].ID)
}

func TestProvidersInitialFailureMeansEmpty(t *testing.T) {
	lister := &fakeLister{err: errors.New("network down")}
	d := New(lister, nil)

	providers, err := d.Providers(context.Background())
	assert.Error(t, err)
	assert.Empty(t, providers)
}

func newTestCache(t *testing.T, ttl time.Duration) (*SnapshotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSnapshotCache(client, ttl), mr
}

func TestCacheHitSkipsAPI(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	require.NoError(t, cache.Set(context.Background(), []schedapi.Provider{{ID: "cached"}}))

	lister := &fakeLister{providers: []schedapi.Provider{{ID: "fresh"}}}
	d := New(lister, nil, WithCache(cache))

	providers, err := d.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "cached", providers[0].ID)
	assert.Zero(t, lister.calls)
}

func TestCacheMissFetchesAndStores(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	lister := &fakeLister{providers: []schedapi.Provider{{ID: "p1"}}}
	d := New(lister, nil, WithCache(cache))

	_, err := d.Providers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls)

	stored, ok, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, stored, 1)
	assert.Equal(t, "p1", stored[0].ID)
}

func TestCacheExpiryFallsThroughToAPI(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	require.NoError(t, cache.Set(context.Background(), []schedapi.Provider{{ID: "cached"}}))
	mr.FastForward(2 * time.Minute)

	lister := &fakeLister{providers: []schedapi.Provider{{ID: "fresh"}}}
	d := New(lister, nil, WithCache(cache))

	providers, err := d.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "fresh", providers[0].ID)
	assert.Equal(t, 1, lister.calls)
}

func TestCacheUnavailableFallsThroughToAPI(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	lister := &fakeLister{providers: []schedapi.Provider{{ID: "p1"}}}
	d := New(lister, nil, WithCache(cache))

	providers, err := d.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "p1", providers[0].ID)
}
