package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/milan-air-quality/internal/observability"
)

// Store memoizes one dataset for the process lifetime. The first Get
// computes it; concurrent first callers wait on the same computation and
// receive the identical *Dataset. A failed load is not cached, so the next
// Get retries against the sources. Reset clears the cache, which tests use
// to force a fresh load against fixture files.
type Store struct {
	loader  *Loader
	metrics *observability.Metrics

	mu    sync.Mutex
	ds    *Dataset
	ready atomic.Bool
}

// NewStore creates a Store around the loader.
func NewStore(loader *Loader, metrics *observability.Metrics) *Store {
	return &Store{loader: loader, metrics: metrics}
}

// Get returns the memoized dataset, computing it on first call.
func (s *Store) Get(ctx context.Context) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ds != nil {
		return s.ds, nil
	}

	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.ds = ds
	s.ready.Store(true)
	s.metrics.DatasetReady.Set(1)
	return ds, nil
}

// Reset discards the cached dataset.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = nil
	s.ready.Store(false)
	s.metrics.DatasetReady.Set(0)
}

// CheckReadiness reports nil once a dataset has been loaded. It never
// triggers a load itself, so /readyz stays cheap.
func (s *Store) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}
