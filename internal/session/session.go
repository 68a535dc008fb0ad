// Package session is the single source of truth for "am I logged in, and as
// whom". It keeps the credential pair and the member profile in memory for
// synchronous reads and mirrors them to durable local state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/tercera/internal/domain"
	"github.com/aussiebroadwan/tercera/internal/store"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

// State is the session state machine.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

var (
	ErrMissingToken = errors.New("session: token response has no access token")
)

// AuthError is returned by Login. The store is LoggedOut whenever one is
// returned.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("session: %s: %v", e.Op, e.Err) }

func (e *AuthError) Unwrap() error { return e.Err }

// ProfileFetcher returns the raw profile document for an access token.
// *firesdk.SDKClient satisfies it.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (json.RawMessage, error)
}

// Store holds the current session. The zero value is not usable; use New.
type Store struct {
	local   store.Store
	fetcher ProfileFetcher

	// ops serialises Login, Logout and Init so their durable writes never
	// interleave.
	ops sync.Mutex

	mu      sync.RWMutex
	access  string
	refresh string
	user    domain.Profile

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// New returns a LoggedOut store. Call Init to restore a persisted session.
func New(local store.Store, fetcher ProfileFetcher) *Store {
	return &Store{
		local:   local,
		fetcher: fetcher,
		subs:    make(map[int]func(State)),
	}
}

var _ firesdk.TokenSource = (*Store)(nil)

// AccessToken returns the in-memory access token or "". It never performs I/O.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the in-memory refresh token or "".
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// CurrentUser returns a copy of the profile snapshot.
func (s *Store) CurrentUser() (domain.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	return s.user.Clone(), true
}

// State reports LoggedIn when both a token and a profile are held.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	if s.access != "" && s.user != nil {
		return LoggedIn
	}
	return LoggedOut
}

// Subscribe registers fn to be called after every state transition. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(state State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// set replaces the in-memory session and notifies on a state change.
func (s *Store) set(access, refresh string, user domain.Profile) {
	s.mu.Lock()
	before := s.stateLocked()
	s.access, s.refresh, s.user = access, refresh, user
	after := s.stateLocked()
	s.mu.Unlock()

	if before != after || after == LoggedIn {
		s.notify(after)
	}
}
