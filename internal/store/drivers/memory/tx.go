package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aussiebroadwan/tercera/internal/store"
)

// txStore overlays staged writes on the parent store. A nil value in writes
// marks a deletion.
type txStore struct {
	parent *Store

	mu     sync.Mutex
	writes map[string]*string
	done   bool
}

func (t *txStore) State() store.LocalState { return &txStateRepo{t: t} }

func (t *txStore) ApplyMigrations() error { return nil }
func (t *txStore) Close() error           { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, errNestedTx }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

func (t *txStore) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true

	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	if t.parent.closed {
		return store.ErrClosed
	}
	for k, v := range t.writes {
		if v == nil {
			delete(t.parent.data, k)
			continue
		}
		t.parent.data[k] = *v
	}
	return nil
}

func (t *txStore) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = true
	t.writes = nil
	return nil
}

type txStateRepo struct {
	t *txStore
}

func (r *txStateRepo) Get(ctx context.Context, key string) (string, error) {
	r.t.mu.Lock()
	v, staged := r.t.writes[key]
	r.t.mu.Unlock()
	if staged {
		if v == nil {
			return "", store.ErrNotFound
		}
		return *v, nil
	}
	return r.t.parent.State().Get(ctx, key)
}

func (r *txStateRepo) Set(ctx context.Context, key, value string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if r.t.done {
		return store.ErrClosed
	}
	r.t.writes[key] = &value
	return nil
}

func (r *txStateRepo) Delete(ctx context.Context, key string) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if r.t.done {
		return store.ErrClosed
	}
	r.t.writes[key] = nil
	return nil
}

func (r *txStateRepo) Keys(ctx context.Context) ([]string, error) {
	base, err := r.t.parent.State().Keys(ctx)
	if err != nil {
		return nil, err
	}

	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	set := make(map[string]struct{}, len(base))
	for _, k := range base {
		set[k] = struct{}{}
	}
	for k, v := range r.t.writes {
		if v == nil {
			delete(set, k)
		} else {
			set[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
