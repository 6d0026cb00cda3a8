// Package session owns the client authentication lifecycle: the persisted
// bearer token, the cached profile, route guarding and forced logout on 401.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/model"
	"github.com/and161185/budget-keeper/internal/store"
)

// DefaultProbeTimeout bounds how long a bypass-mode guard waits for /auth/me.
const DefaultProbeTimeout = 2 * time.Second

// BypassValue is the value sent in the dev bypass header.
const BypassValue = "1"

// Login routes used for redirects.
const (
	LoginPath = "/login"
)

// State is the lifecycle state of a session.
type State int

const (
	Anonymous State = iota
	Probing
	Authenticated
	Expired
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Probing:
		return "probing"
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Prober fetches the current user's profile (GET /auth/me).
type Prober interface {
	Me(ctx context.Context) (*model.User, error)
}

// Navigator performs redirects requested by the session.
type Navigator interface {
	Redirect(target string)
}

// Authenticator is what the HTTP layer needs from a session.
type Authenticator interface {
	AttachCredentials(req *http.Request)
	HandleUnauthorized()
}

type nopNavigator struct{}

func (nopNavigator) Redirect(string) {}

// Manager is the single source of truth for the client's authentication state.
type Manager struct {
	mu      sync.Mutex
	token   string
	user    *model.User
	probing bool

	store        store.Store
	prober       Prober
	nav          Navigator
	log          *zap.Logger
	bypassHeader string
	production   bool
	probeTimeout time.Duration
	now          func() time.Time

	detached sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(m *Manager) { m.log = l } }

// WithNavigator sets the redirect target.
func WithNavigator(n Navigator) Option { return func(m *Manager) { m.nav = n } }

// WithBypassHeader enables the development auth bypass with the given header name.
// It has no effect in production mode.
func WithBypassHeader(name string) Option { return func(m *Manager) { m.bypassHeader = name } }

// WithProduction marks the build as production, disabling the bypass.
func WithProduction(p bool) Option { return func(m *Manager) { m.production = p } }

// WithProbeTimeout overrides DefaultProbeTimeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.probeTimeout = d
		}
	}
}

// WithClock overrides the time source used for token expiry.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// Open builds a Manager and loads the persisted token, if any.
func Open(ctx context.Context, st store.Store, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:        st,
		nav:          nopNavigator{},
		log:          zap.NewNop(),
		probeTimeout: DefaultProbeTimeout,
		now:          time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	tok, err := st.Get(ctx, store.KeyAccessToken)
	switch {
	case err == nil:
		m.token = tok
	case errors.Is(err, errs.ErrNotFound):
	default:
		return nil, fmt.Errorf("load token: %w", err)
	}
	return m, nil
}

// SetProber wires the profile endpoint. It is separate from Open because the
// REST client itself depends on the Manager.
func (m *Manager) SetProber(p Prober) {
	m.mu.Lock()
	m.prober = p
	m.mu.Unlock()
}

// BypassActive reports whether the development bypass header is sent.
func (m *Manager) BypassActive() bool { return m.bypassHeader != "" && !m.production }

// State reports the current state; expiry is evaluated on each call.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.probing:
		return Probing
	case m.token == "":
		return Anonymous
	case m.validLocked():
		return Authenticated
	default:
		return Expired
	}
}

// Token returns the stored token, possibly expired.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// IsAuthenticated reports whether a token is present and its exp claim lies in the future.
// The signature is not verified; a malformed or exp-less token counts as unauthenticated.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validLocked()
}

func (m *Manager) validLocked() bool {
	if m.token == "" {
		return false
	}
	exp, ok := TokenExpiry(m.token)
	return ok && exp.After(m.now())
}

// TokenExpiry decodes the exp claim of a JWT without verifying it.
func TokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// CurrentUser returns a copy of the cached profile.
func (m *Manager) CurrentUser() (*model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, false
	}
	u := *m.user
	return &u, true
}

// AttachCredentials adds the bearer token and, outside production, the bypass header.
func (m *Manager) AttachCredentials(req *http.Request) {
	m.mu.Lock()
	tok := m.token
	m.mu.Unlock()
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if m.BypassActive() {
		req.Header.Set(m.bypassHeader, BypassValue)
	}
}

// Bootstrap probes the profile when there is a stored token or the bypass is active.
// In strict mode a failed probe logs out; in bypass mode failures are ignored.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	if m.token == "" && !m.BypassActive() {
		m.mu.Unlock()
		return nil
	}
	m.probing = true
	m.mu.Unlock()

	err := m.probe(ctx)

	m.mu.Lock()
	m.probing = false
	m.mu.Unlock()

	if err == nil {
		return nil
	}
	if m.BypassActive() {
		m.log.Debug("profile probe failed in bypass mode", zap.Error(err))
		return nil
	}
	m.log.Info("stored session rejected, logging out", zap.Error(err))
	return m.Logout(ctx)
}

// probe calls /auth/me and caches the user on success.
func (m *Manager) probe(ctx context.Context) error {
	m.mu.Lock()
	p := m.prober
	m.mu.Unlock()
	if p == nil {
		return errors.New("session: no profile prober configured")
	}
	u, err := p.Me(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
	return nil
}

// GuardNavigation decides whether a protected target may be entered.
// With the bypass active it waits at most the probe timeout for /auth/me and
// allows the navigation whatever the outcome; the probe itself keeps running.
// Otherwise an unauthenticated caller is redirected to the login page.
func (m *Manager) GuardNavigation(ctx context.Context, target string) bool {
	if m.IsAuthenticated() {
		return true
	}
	if m.BypassActive() {
		done := make(chan struct{})
		m.detached.Add(1)
		go func() {
			defer m.detached.Done()
			defer close(done)
			if err := m.probe(context.WithoutCancel(ctx)); err != nil {
				m.log.Debug("guard probe failed", zap.Error(err))
			}
		}()
		t := time.NewTimer(m.probeTimeout)
		defer t.Stop()
		select {
		case <-done:
		case <-t.C:
			m.log.Debug("guard probe timed out", zap.Duration("timeout", m.probeTimeout))
		case <-ctx.Done():
		}
		return true
	}
	m.nav.Redirect(LoginPath + "?returnUrl=" + url.QueryEscape(target))
	return false
}

// Wait blocks until probes detached by GuardNavigation have finished.
func (m *Manager) Wait() { m.detached.Wait() }

// Login persists token and refreshes the cached profile. A profile fetch
// that fails for any reason other than a 401 is logged and ignored; a 401
// means the fresh token was rejected, so the session is cleared and the
// error returned.
func (m *Manager) Login(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, store.KeyAccessToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	m.mu.Lock()
	m.token = token
	m.user = nil
	m.mu.Unlock()
	err := m.probe(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrUnauthorized):
		if lerr := m.Logout(ctx); lerr != nil {
			m.log.Warn("logout after rejected token failed", zap.Error(lerr))
		}
		return fmt.Errorf("verify token: %w", err)
	default:
		m.log.Debug("profile fetch after login failed", zap.Error(err))
	}
	return nil
}

// Logout clears the token and the cached profile.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
	if err := m.store.Delete(ctx, store.KeyAccessToken); err != nil {
		return fmt.Errorf("forget token: %w", err)
	}
	return nil
}

// HandleUnauthorized is invoked for every 401 response: it logs out and
// redirects to the login page.
func (m *Manager) HandleUnauthorized() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Logout(ctx); err != nil {
		m.log.Warn("logout after 401 failed", zap.Error(err))
	}
	m.nav.Redirect(LoginPath)
}
