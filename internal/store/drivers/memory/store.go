// Package memory is a process-local store driver. Nothing survives the
// process; it backs tests and --ephemeral runs.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aussiebroadwan/tercera/internal/store"
)

var errNestedTx = errors.New("memory: nested transactions not supported")

type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) State() store.LocalState { return &stateRepo{s: s} }

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

// Tx stages writes in an overlay and applies them on Commit.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}
	return &txStore{parent: s, writes: make(map[string]*string)}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Snapshot copies the current contents. Test helper.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

type stateRepo struct {
	s *Store
}

func (r *stateRepo) Get(ctx context.Context, key string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return "", store.ErrClosed
	}
	v, ok := r.s.data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (r *stateRepo) Set(ctx context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.closed {
		return store.ErrClosed
	}
	r.s.data[key] = value
	return nil
}

func (r *stateRepo) Delete(ctx context.Context, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.closed {
		return store.ErrClosed
	}
	delete(r.s.data, key)
	return nil
}

func (r *stateRepo) Keys(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.closed {
		return nil, store.ErrClosed
	}
	keys := make([]string, 0, len(r.s.data))
	for k := range r.s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
