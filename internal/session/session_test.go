package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/tercera/internal/domain"
	"github.com/aussiebroadwan/tercera/internal/store"
	"github.com/aussiebroadwan/tercera/internal/store/drivers/memory"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
	"github.com/stretchr/testify/require"
)

const profileJSON = `{"id": 7, "first_name": "Ana", "groups": ["Tesorero"], "permissions": []}`

// fakeFetcher serves a fixed profile, or fails.
type fakeFetcher struct {
	mu     sync.Mutex
	raw    string
	err    error
	tokens []string
}

func (f *fakeFetcher) FetchProfile(ctx context.Context, accessToken string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, accessToken)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.raw), nil
}

func newTestStore(t *testing.T, fetcher ProfileFetcher) (*Store, *memory.Store) {
	t.Helper()
	local := memory.NewStore()
	t.Cleanup(func() { _ = local.Close() })
	return New(local, fetcher), local
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{raw: profileJSON}
	s, local := newTestStore(t, fetcher)

	var seen []State
	s.Subscribe(func(st State) { seen = append(seen, st) })

	err := s.Login(context.Background(), firesdk.TokenPair{Access: "acc", Refresh: "ref"})
	require.NoError(t, err)

	require.Equal(t, LoggedIn, s.State())
	require.Equal(t, "acc", s.AccessToken())
	require.Equal(t, "ref", s.RefreshToken())

	user, ok := s.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "7", user.ID())

	snap := local.Snapshot()
	require.Equal(t, "acc", snap[domain.KeyAccessToken])
	require.Equal(t, "ref", snap[domain.KeyRefreshToken])
	require.JSONEq(t, profileJSON, snap[domain.KeyUser])

	require.Equal(t, []string{"acc"}, fetcher.tokens)
	require.Equal(t, []State{LoggedIn}, seen)
}

func TestLogin_ProfileFailureLeavesLoggedOut(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: firesdk.ErrUnauthorized}
	s, local := newTestStore(t, fetcher)

	err := s.Login(context.Background(), firesdk.TokenPair{Access: "acc", Refresh: "ref"})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "fetch profile", authErr.Op)
	require.ErrorIs(t, err, firesdk.ErrUnauthorized)

	require.Equal(t, LoggedOut, s.State())
	require.Empty(t, s.AccessToken())
	require.Empty(t, local.Snapshot())
}

func TestLogin_FailureClearsPreviousSession(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{raw: profileJSON}
	s, local := newTestStore(t, fetcher)

	require.NoError(t, s.Login(context.Background(), firesdk.TokenPair{Access: "old", Refresh: "r"}))

	fetcher.mu.Lock()
	fetcher.raw = `null`
	fetcher.mu.Unlock()

	err := s.Login(context.Background(), firesdk.TokenPair{Access: "new"})
	require.ErrorIs(t, err, domain.ErrEmptyProfile)

	require.Equal(t, LoggedOut, s.State())
	require.Empty(t, local.Snapshot())
}

func TestLogin_RejectsNonObjectProfile(t *testing.T) {
	t.Parallel()

	s, local := newTestStore(t, &fakeFetcher{raw: `["not", "a", "profile"]`})

	err := s.Login(context.Background(), firesdk.TokenPair{Access: "acc"})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "parse profile", authErr.Op)
	require.Equal(t, LoggedOut, s.State())
	require.Empty(t, local.Snapshot())
}

func TestLogin_EmptyAccessToken(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{raw: profileJSON}
	s, _ := newTestStore(t, fetcher)

	err := s.Login(context.Background(), firesdk.TokenPair{Refresh: "ref"})
	require.ErrorIs(t, err, ErrMissingToken)
	require.Empty(t, fetcher.tokens)
}

func TestLogin_WithoutRefreshToken(t *testing.T) {
	t.Parallel()

	s, local := newTestStore(t, &fakeFetcher{raw: profileJSON})

	require.NoError(t, s.Login(context.Background(), firesdk.TokenPair{Access: "acc"}))
	_, ok := local.Snapshot()[domain.KeyRefreshToken]
	require.False(t, ok)
	require.Equal(t, LoggedIn, s.State())
}

// failingStore refuses every transaction.
type failingStore struct {
	*memory.Store
}

var errDiskFull = errors.New("disk full")

func (f failingStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errDiskFull
}

func TestLogin_PersistFailure(t *testing.T) {
	t.Parallel()

	s := New(failingStore{memory.NewStore()}, &fakeFetcher{raw: profileJSON})

	err := s.Login(context.Background(), firesdk.TokenPair{Access: "acc"})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "persist", authErr.Op)
	require.ErrorIs(t, err, errDiskFull)
	require.Equal(t, LoggedOut, s.State())
	require.Empty(t, s.AccessToken())
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("clears an active session", func(t *testing.T) {
		s, local := newTestStore(t, &fakeFetcher{raw: profileJSON})
		require.NoError(t, s.Login(context.Background(), firesdk.TokenPair{Access: "acc", Refresh: "ref"}))

		var seen []State
		s.Subscribe(func(st State) { seen = append(seen, st) })

		require.NoError(t, s.Logout(context.Background()))
		require.Equal(t, LoggedOut, s.State())
		require.Empty(t, s.AccessToken())
		require.Empty(t, s.RefreshToken())
		_, ok := s.CurrentUser()
		require.False(t, ok)
		require.Empty(t, local.Snapshot())
		require.Equal(t, []State{LoggedOut}, seen)
	})

	t.Run("is idempotent", func(t *testing.T) {
		s, local := newTestStore(t, &fakeFetcher{raw: profileJSON})

		require.NoError(t, s.Logout(context.Background()))
		require.NoError(t, s.Logout(context.Background()))
		require.Equal(t, LoggedOut, s.State())
		require.Empty(t, local.Snapshot())
	})

	t.Run("clears stray keys while logged out", func(t *testing.T) {
		s, local := newTestStore(t, &fakeFetcher{raw: profileJSON})
		require.NoError(t, local.State().Set(context.Background(), domain.KeyRefreshToken, "orphan"))
		require.NoError(t, local.State().Set(context.Background(), "theme", "dark"))

		require.NoError(t, s.Logout(context.Background()))
		require.Equal(t, map[string]string{"theme": "dark"}, local.Snapshot())
	})

	t.Run("storage failure still clears memory", func(t *testing.T) {
		local := memory.NewStore()
		s := New(local, &fakeFetcher{raw: profileJSON})
		require.NoError(t, s.Login(context.Background(), firesdk.TokenPair{Access: "acc"}))
		require.NoError(t, local.Close())

		err := s.Logout(context.Background())
		require.ErrorIs(t, err, store.ErrClosed)
		require.Equal(t, LoggedOut, s.State())
		require.Empty(t, s.AccessToken())
	})
}

func TestExpire(t *testing.T) {
	t.Parallel()

	s, local := newTestStore(t, &fakeFetcher{raw: profileJSON})
	require.NoError(t, s.Login(context.Background(), firesdk.TokenPair{Access: "acc"}))

	s.Expire(context.Background())
	require.Equal(t, LoggedOut, s.State())
	require.Empty(t, local.Snapshot())
}

func TestInit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	seed := func(t *testing.T, kv map[string]string) (*Store, *memory.Store) {
		t.Helper()
		s, local := newTestStore(t, &fakeFetcher{})
		for k, v := range kv {
			require.NoError(t, local.State().Set(ctx, k, v))
		}
		require.NoError(t, s.Init(ctx))
		return s, local
	}

	t.Run("empty state", func(t *testing.T) {
		s, _ := seed(t, nil)
		require.Equal(t, LoggedOut, s.State())
	})

	t.Run("restores a complete session", func(t *testing.T) {
		s, _ := seed(t, map[string]string{
			domain.KeyAccessToken:  "acc",
			domain.KeyRefreshToken: "ref",
			domain.KeyUser:         profileJSON,
		})
		require.Equal(t, LoggedIn, s.State())
		require.Equal(t, "acc", s.AccessToken())
		user, ok := s.CurrentUser()
		require.True(t, ok)
		require.Equal(t, "Ana", user.DisplayName())
	})

	t.Run("corrupt profile is logged out", func(t *testing.T) {
		s, local := seed(t, map[string]string{
			domain.KeyAccessToken: "acc",
			domain.KeyUser:        `{"id": 7,`,
		})
		require.Equal(t, LoggedOut, s.State())
		require.Empty(t, s.AccessToken())
		require.Empty(t, local.Snapshot())
	})

	t.Run("token without profile is logged out", func(t *testing.T) {
		s, local := seed(t, map[string]string{domain.KeyAccessToken: "acc"})
		require.Equal(t, LoggedOut, s.State())
		require.Empty(t, local.Snapshot())
	})

	t.Run("profile without token is logged out", func(t *testing.T) {
		s, _ := seed(t, map[string]string{domain.KeyUser: profileJSON})
		require.Equal(t, LoggedOut, s.State())
		_, ok := s.CurrentUser()
		require.False(t, ok)
	})
}

func TestCurrentUser_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, &fakeFetcher{raw: profileJSON})
	require.NoError(t, s.Login(context.Background(), firesdk.TokenPair{Access: "acc"}))

	user, _ := s.CurrentUser()
	user["id"] = "tampered"
	user["groups"].([]any)[0] = "nadie"

	again, _ := s.CurrentUser()
	require.Equal(t, "7", again.ID())
	require.Equal(t, []any{"Tesorero"}, again["groups"])
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, &fakeFetcher{raw: profileJSON})

	calls := 0
	unsubscribe := s.Subscribe(func(State) { calls++ })
	unsubscribe()

	require.NoError(t, s.Login(context.Background(), firesdk.TokenPair{Access: "acc"}))
	require.Zero(t, calls)
}

func TestStore_IsTokenSource(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, &fakeFetcher{raw: profileJSON})
	require.NoError(t, s.Login(context.Background(), firesdk.TokenPair{Access: "acc"}))

	var src firesdk.TokenSource = s
	require.Equal(t, "acc", src.AccessToken())
}
