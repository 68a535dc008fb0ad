package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/tercera/internal/domain"
	"github.com/aussiebroadwan/tercera/internal/store"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
	"github.com/aussiebroadwan/tercera/pkg/slogx"
)

// Init restores the session persisted in local state. A missing token, a
// missing profile or a corrupt profile all mean LoggedOut; leftover keys are
// cleared best-effort. Only storage failures are returned.
func (s *Store) Init(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	log := slogx.FromContext(ctx)
	state := s.local.State()

	access, err := getOptional(ctx, state, domain.KeyAccessToken)
	if err != nil {
		return fmt.Errorf("session: load access token: %w", err)
	}
	refresh, err := getOptional(ctx, state, domain.KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("session: load refresh token: %w", err)
	}
	rawUser, err := getOptional(ctx, state, domain.KeyUser)
	if err != nil {
		return fmt.Errorf("session: load profile: %w", err)
	}

	if access == "" && refresh == "" && rawUser == "" {
		s.set("", "", nil)
		return nil
	}

	var user domain.Profile
	if rawUser != "" {
		user, err = domain.ParseProfile([]byte(rawUser))
		if err != nil {
			log.Warn("session: stored profile is unreadable, starting logged out", "error", err)
		}
	}

	if access == "" || user == nil {
		log.Warn("session: incomplete stored session, clearing",
			"has_token", access != "",
			"has_profile", user != nil,
		)
		if err := s.clearDurable(ctx); err != nil {
			log.Warn("session: failed to clear stale keys", "error", err)
		}
		s.set("", "", nil)
		return nil
	}

	s.set(access, refresh, user)
	log.Debug("session: restored", "user_id", user.ID())
	return nil
}

// Login validates tokens by fetching the profile with the candidate access
// token, then commits token pair and profile together. Nothing is written
// until the profile has been fetched and parsed. On any failure the store is
// left LoggedOut, including when a previous session was active.
func (s *Store) Login(ctx context.Context, tokens firesdk.TokenPair) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	log := slogx.FromContext(ctx)

	user, rawUser, err := s.fetchProfile(ctx, tokens.Access)
	if err == nil {
		err = s.local.WithTx(ctx, func(tx store.Tx) error {
			return writeSession(ctx, tx.State(), tokens, rawUser)
		})
		if err != nil {
			err = &AuthError{Op: "persist", Err: err}
		}
	}

	if err != nil {
		log.Warn("session: login failed", "error", err)
		s.discard(ctx)
		return err
	}

	s.set(tokens.Access, tokens.Refresh, user)
	log.Info("session: logged in", "user_id", user.ID())
	return nil
}

func (s *Store) fetchProfile(ctx context.Context, access string) (domain.Profile, string, error) {
	if strings.TrimSpace(access) == "" {
		return nil, "", &AuthError{Op: "login", Err: ErrMissingToken}
	}

	raw, err := s.fetcher.FetchProfile(ctx, access)
	if err != nil {
		return nil, "", &AuthError{Op: "fetch profile", Err: err}
	}

	user, err := domain.ParseProfile(raw)
	if err != nil {
		return nil, "", &AuthError{Op: "parse profile", Err: err}
	}

	compact, err := json.Marshal(user)
	if err != nil {
		return nil, "", &AuthError{Op: "encode profile", Err: err}
	}
	return user, string(compact), nil
}

func writeSession(ctx context.Context, state store.LocalState, tokens firesdk.TokenPair, rawUser string) error {
	if err := state.Set(ctx, domain.KeyAccessToken, tokens.Access); err != nil {
		return err
	}
	if tokens.Refresh == "" {
		if err := state.Delete(ctx, domain.KeyRefreshToken); err != nil {
			return err
		}
	} else if err := state.Set(ctx, domain.KeyRefreshToken, tokens.Refresh); err != nil {
		return err
	}
	return state.Set(ctx, domain.KeyUser, rawUser)
}

// Logout clears the session from memory and local state. Memory is always
// cleared, even when the durable delete fails. Calling it while LoggedOut is
// a no-op apart from the delete.
func (s *Store) Logout(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	wasIn := s.State() == LoggedIn
	s.set("", "", nil)

	if err := s.clearDurable(ctx); err != nil {
		return fmt.Errorf("session: logout: %w", err)
	}
	if wasIn {
		slogx.FromContext(ctx).Info("session: logged out")
	}
	return nil
}

// Expire is the LoggedIn to LoggedOut transition forced by an unauthorized
// API response.
func (s *Store) Expire(ctx context.Context) {
	log := slogx.FromContext(ctx)
	if s.State() == LoggedIn {
		log.Warn("session: expired by server")
	}
	if err := s.Logout(ctx); err != nil {
		log.Error("session: failed to clear expired session", "error", err)
	}
}

// discard clears memory and local state after a failed login. Caller holds ops.
func (s *Store) discard(ctx context.Context) {
	s.set("", "", nil)
	if err := s.clearDurable(ctx); err != nil {
		slogx.FromContext(ctx).Error("session: failed to clear local state", "error", err)
	}
}

func (s *Store) clearDurable(ctx context.Context) error {
	return s.local.WithTx(ctx, func(tx store.Tx) error {
		state := tx.State()
		for _, key := range domain.SessionKeys {
			if err := state.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func getOptional(ctx context.Context, state store.LocalState, key string) (string, error) {
	v, err := state.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return v, err
}
