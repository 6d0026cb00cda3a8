package session

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/model"
	"github.com/and161185/budget-keeper/internal/store"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-verified"))
	require.NoError(t, err)
	return s
}

func tokenExpiring(t *testing.T, exp time.Time) string {
	return signed(t, jwt.RegisteredClaims{Subject: "user@example.com", ExpiresAt: jwt.NewNumericDate(exp)})
}

type recNav struct {
	mu      sync.Mutex
	targets []string
}

func (n *recNav) Redirect(target string) {
	n.mu.Lock()
	n.targets = append(n.targets, target)
	n.mu.Unlock()
}

func (n *recNav) got() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

type proberFunc func(ctx context.Context) (*model.User, error)

func (f proberFunc) Me(ctx context.Context) (*model.User, error) { return f(ctx) }

func openManager(t *testing.T, st store.Store, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t)), WithClock(func() time.Time { return fixedNow })}, opts...)
	m, err := Open(context.Background(), st, opts...)
	require.NoError(t, err)
	return m
}

func TestIsAuthenticated_Expiry(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"expires in one second", tokenExpiring(t, fixedNow.Add(time.Second)), true},
		{"expired one second ago", tokenExpiring(t, fixedNow.Add(-time.Second)), false},
		{"expires exactly now", tokenExpiring(t, fixedNow), false},
		{"no exp claim", signed(t, jwt.RegisteredClaims{Subject: "x"}), false},
		{"empty", "", false},
		{"garbage", "not-a-jwt", false},
		{"two segments", "a.b", false},
		{"bad base64 payload", "eyJhbGciOiJIUzI1NiJ9.@@@.sig", false},
		{"non-json payload", "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".sig", false},
		{"string exp", "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":"tomorrow"}`)) + ".sig", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemory()
			if tc.token != "" {
				require.NoError(t, st.Set(context.Background(), store.KeyAccessToken, tc.token))
			}
			m := openManager(t, st)
			require.NotPanics(t, func() { require.Equal(t, tc.want, m.IsAuthenticated()) })
		})
	}
}

func TestState(t *testing.T) {
	st := store.NewMemory()
	m := openManager(t, st)
	require.Equal(t, Anonymous, m.State())

	require.NoError(t, m.Login(context.Background(), tokenExpiring(t, fixedNow.Add(time.Hour))))
	require.Equal(t, Authenticated, m.State())

	// the clock moves past exp: expiry is evaluated lazily
	m.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	require.Equal(t, Expired, m.State())
	require.Equal(t, "expired", m.State().String())
}

func TestAttachCredentials(t *testing.T) {
	tok := tokenExpiring(t, fixedNow.Add(time.Hour))

	t.Run("bearer only", func(t *testing.T) {
		st := store.NewMemory()
		require.NoError(t, st.Set(context.Background(), store.KeyAccessToken, tok))
		m := openManager(t, st)
		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		m.AttachCredentials(req)
		require.Equal(t, "Bearer "+tok, req.Header.Get("Authorization"))
		require.Empty(t, req.Header.Get("X-DEV-AUTH"))
	})

	t.Run("bypass without token", func(t *testing.T) {
		m := openManager(t, store.NewMemory(), WithBypassHeader("X-DEV-AUTH"))
		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		m.AttachCredentials(req)
		require.Empty(t, req.Header.Get("Authorization"))
		require.Equal(t, "1", req.Header.Get("X-DEV-AUTH"))
	})

	t.Run("bypass ignored in production", func(t *testing.T) {
		m := openManager(t, store.NewMemory(), WithBypassHeader("X-DEV-AUTH"), WithProduction(true))
		require.False(t, m.BypassActive())
		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		m.AttachCredentials(req)
		require.Empty(t, req.Header.Get("X-DEV-AUTH"))
	})
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	tok := tokenExpiring(t, fixedNow.Add(time.Hour))
	alice := &model.User{ID: 1, Name: "Alice"}

	t.Run("no token no probe", func(t *testing.T) {
		m := openManager(t, store.NewMemory())
		m.SetProber(proberFunc(func(context.Context) (*model.User, error) {
			t.Fatal("probe must not run")
			return nil, nil
		}))
		require.NoError(t, m.Bootstrap(ctx))
		require.Equal(t, Anonymous, m.State())
	})

	t.Run("probe ok caches user", func(t *testing.T) {
		st := store.NewMemory()
		require.NoError(t, st.Set(ctx, store.KeyAccessToken, tok))
		m := openManager(t, st)
		m.SetProber(proberFunc(func(context.Context) (*model.User, error) {
			require.Equal(t, Probing, m.State())
			return alice, nil
		}))
		require.NoError(t, m.Bootstrap(ctx))
		require.Equal(t, Authenticated, m.State())
		u, ok := m.CurrentUser()
		require.True(t, ok)
		require.Equal(t, "Alice", u.Name)
	})

	t.Run("strict failure logs out", func(t *testing.T) {
		st := store.NewMemory()
		require.NoError(t, st.Set(ctx, store.KeyAccessToken, tok))
		m := openManager(t, st)
		m.SetProber(proberFunc(func(context.Context) (*model.User, error) { return nil, errs.ErrUnauthorized }))
		require.NoError(t, m.Bootstrap(ctx))
		require.Equal(t, Anonymous, m.State())
		_, err := st.Get(ctx, store.KeyAccessToken)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("bypass failure keeps token", func(t *testing.T) {
		st := store.NewMemory()
		require.NoError(t, st.Set(ctx, store.KeyAccessToken, tok))
		m := openManager(t, st, WithBypassHeader("X-DEV-AUTH"))
		m.SetProber(proberFunc(func(context.Context) (*model.User, error) { return nil, errors.New("offline") }))
		require.NoError(t, m.Bootstrap(ctx))
		require.Equal(t, tok, m.Token())
		require.Equal(t, Authenticated, m.State())
	})

	t.Run("bypass without token still probes", func(t *testing.T) {
		m := openManager(t, store.NewMemory(), WithBypassHeader("X-DEV-AUTH"))
		m.SetProber(proberFunc(func(context.Context) (*model.User, error) { return alice, nil }))
		require.NoError(t, m.Bootstrap(ctx))
		u, ok := m.CurrentUser()
		require.True(t, ok)
		require.Equal(t, int64(1), u.ID)
	})
}

func TestGuardNavigation_Strict(t *testing.T) {
	ctx := context.Background()
	nav := &recNav{}
	m := openManager(t, store.NewMemory(), WithNavigator(nav))

	require.False(t, m.GuardNavigation(ctx, "/transactions?page=2"))
	require.Equal(t, []string{"/login?returnUrl=%2Ftransactions%3Fpage%3D2"}, nav.got())

	require.NoError(t, m.Login(ctx, tokenExpiring(t, fixedNow.Add(time.Minute))))
	require.True(t, m.GuardNavigation(ctx, "/transactions"))
	require.Len(t, nav.got(), 1)
}

func TestGuardNavigation_BypassTimeout(t *testing.T) {
	release := make(chan struct{})
	var finished, cancelled atomic.Bool
	m := openManager(t, store.NewMemory(),
		WithBypassHeader("X-DEV-AUTH"),
		WithProbeTimeout(50*time.Millisecond),
		WithNavigator(&recNav{}))
	m.SetProber(proberFunc(func(ctx context.Context) (*model.User, error) {
		<-release
		cancelled.Store(ctx.Err() != nil)
		finished.Store(true)
		return &model.User{ID: 7, Name: "Late"}, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	require.True(t, m.GuardNavigation(ctx, "/gifts"))
	require.Less(t, time.Since(start), time.Second)
	cancel()

	// the probe outlives the guard and still fills the cache
	close(release)
	m.Wait()
	require.True(t, finished.Load())
	require.False(t, cancelled.Load())
	u, ok := m.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "Late", u.Name)
}

func TestGuardNavigation_BypassProbeFails(t *testing.T) {
	nav := &recNav{}
	m := openManager(t, store.NewMemory(), WithBypassHeader("X-DEV-AUTH"), WithNavigator(nav))
	m.SetProber(proberFunc(func(context.Context) (*model.User, error) { return nil, errors.New("boom") }))
	require.True(t, m.GuardNavigation(context.Background(), "/"))
	m.Wait()
	require.Empty(t, nav.got())
}

func TestHandleUnauthorized(t *testing.T) {
	ctx := context.Background()
	nav := &recNav{}
	st := store.NewMemory()
	m := openManager(t, st, WithNavigator(nav))
	m.SetProber(proberFunc(func(context.Context) (*model.User, error) { return &model.User{ID: 1}, nil }))
	require.NoError(t, m.Login(ctx, tokenExpiring(t, fixedNow.Add(time.Hour))))
	_, ok := m.CurrentUser()
	require.True(t, ok)

	m.HandleUnauthorized()

	require.Equal(t, Anonymous, m.State())
	_, ok = m.CurrentUser()
	require.False(t, ok)
	_, err := st.Get(ctx, store.KeyAccessToken)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.Equal(t, []string{"/login"}, nav.got())
}

func TestLogin_ProbeFailureIsNotFatal(t *testing.T) {
	m := openManager(t, store.NewMemory())
	m.SetProber(proberFunc(func(context.Context) (*model.User, error) { return nil, errors.New("down") }))
	tok := tokenExpiring(t, fixedNow.Add(time.Hour))
	require.NoError(t, m.Login(context.Background(), tok))
	require.True(t, m.IsAuthenticated())
	_, ok := m.CurrentUser()
	require.False(t, ok)
}

func TestLogin_RejectedTokenFails(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	m := openManager(t, st)
	m.SetProber(proberFunc(func(context.Context) (*model.User, error) { return nil, errs.ErrUnauthorized }))

	err := m.Login(ctx, tokenExpiring(t, fixedNow.Add(time.Hour)))
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.False(t, m.IsAuthenticated())
	_, err = st.Get(ctx, store.KeyAccessToken)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
