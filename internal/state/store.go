package state

import (
	"context"
	"errors"
	"sync"

	"vitrine/internal/product"
)

// Snapshot represents the cache contents available to the UI.
type Snapshot struct {
	Records   []product.Product
	Loading   bool
	LastError string // empty when the last operation succeeded
}

// Store mirrors the server-held records in memory. It is the only caller of
// the remote accessor; the list view and the form read and mutate records
// exclusively through it.
//
// Concurrent operations are not queued or coalesced: a second call re-enters
// while the first is outstanding and whichever completion lands last wins for
// Loading/LastError. The lock guards only cache mutation, never network I/O.
type Store struct {
	api product.Accessor

	mu        sync.RWMutex
	records   []product.Product
	loading   bool
	lastError string
}

// New builds a Store over the given accessor.
func New(api product.Accessor) *Store {
	return &Store{api: api}
}

// Snapshot returns a copy of the current cache state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Records:   cloneRecords(s.records),
		Loading:   s.loading,
		LastError: s.lastError,
	}
}

// Load replaces the cache with the server's record sequence. On failure the
// cached records are left untouched.
func (s *Store) Load(ctx context.Context) error {
	s.begin()
	records, err := s.api.List(ctx)
	if err != nil {
		s.finish(err)
		return err
	}

	s.mu.Lock()
	s.records = cloneRecords(records)
	s.mu.Unlock()
	s.finish(nil)
	return nil
}

// Create issues the network create and appends the returned record on
// success. Nothing is cached until the server has confirmed.
func (s *Store) Create(ctx context.Context, p product.Product) (product.Product, error) {
	s.begin()
	created, err := s.api.Create(ctx, p)
	if err != nil {
		s.finish(err)
		return product.Product{}, err
	}

	s.mu.Lock()
	s.records = append(s.records, created)
	s.mu.Unlock()
	s.finish(nil)
	return created, nil
}

// Update issues the network update and replaces the matching cached record in
// place. A success for an id that is not cached is still reported to the
// caller; the cache catches up on the next Load.
func (s *Store) Update(ctx context.Context, id string, p product.Product) (product.Product, error) {
	s.begin()
	updated, err := s.api.Update(ctx, id, p)
	if err != nil {
		s.finish(err)
		return product.Product{}, err
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.finish(nil)
	return updated, nil
}

// Delete issues the network delete and removes the matching cached record on
// success. Deleting an id that is not cached is a cache no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.Delete(ctx, id); err != nil {
		s.finish(err)
		return err
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.finish(nil)
	return nil
}

// GetLocal returns the cached record for id. It never touches the network.
func (s *Store) GetLocal(id string) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return product.Product{}, false
}

// GetOrLoad returns the cached record for id, fetching it from the server
// when absent. A fetched record is merged into the cache: replaced in place
// if an id match appeared meanwhile, appended otherwise.
func (s *Store) GetOrLoad(ctx context.Context, id string) (product.Product, error) {
	if rec, ok := s.GetLocal(id); ok {
		return rec, nil
	}

	s.begin()
	rec, err := s.api.GetByID(ctx, id)
	if err != nil {
		s.finish(err)
		return product.Product{}, err
	}

	s.mu.Lock()
	merged := false
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = rec
			merged = true
			break
		}
	}
	if !merged {
		s.records = append(s.records, rec)
	}
	s.mu.Unlock()
	s.finish(nil)
	return rec, nil
}

// begin marks an operation as started: loading set, previous error cleared
// so a stale message never leaks into a new attempt.
func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) finish(err error) {
	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastError = errorMessage(err)
	}
	s.mu.Unlock()
}

// errorMessage prefers the accessor's user-facing message when the failure
// is classified.
func errorMessage(err error) string {
	var apiErr *product.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

func cloneRecords(records []product.Product) []product.Product {
	if len(records) == 0 {
		return nil
	}
	dup := make([]product.Product, len(records))
	copy(dup, records)
	return dup
}
