package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/trayshop/storefront/pkg/apiclient"
	"github.com/trayshop/storefront/pkg/async"
	"github.com/trayshop/storefront/pkg/broadcast"
	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/statemachine"
)

// API is the subset of *apiclient.Client the manager uses.
type API interface {
	Get(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
	Post(ctx context.Context, path string, in, out any, opts ...apiclient.RequestOption) error
	Put(ctx context.Context, path string, in, out any, opts ...apiclient.RequestOption) error
}

// TokenStore persists the bearer token.
type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Manager is the single owner of the Session. Safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	session Session
	gen     uint64
	sm      *statemachine.Machine[Status, event]

	api       API
	tokens    TokenStore
	endpoints Endpoints
	loginView string
	log       *slog.Logger
	events    *broadcast.MemoryBroadcaster[Session]
}

// NewManager creates a manager in the Anonymous state. Call Start to
// restore a stored session.
func NewManager(api API, tokens TokenStore, opts ...Option) (*Manager, error) {
	if api == nil {
		return nil, ErrNilAPI
	}
	if tokens == nil {
		return nil, ErrNilTokenStore
	}

	m := &Manager{
		session:   anonymous(),
		api:       api,
		tokens:    tokens,
		endpoints: DefaultEndpoints(),
		loginView: defaultLoginView,
		log:       slog.Default(),
		events:    broadcast.NewMemoryBroadcaster[Session](1),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("session"))
	m.sm = newStateMachine(m.log)

	return m, nil
}

// Current returns a copy of the current session.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.clone()
}

// Generation returns the current generation tag.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// Subscribe delivers a Session after every change until ctx is done.
func (m *Manager) Subscribe(ctx context.Context) broadcast.Subscriber[Session] {
	return m.events.Subscribe(ctx)
}

// HasRole reports whether the current user has any of roles.
func (m *Manager) HasRole(roles ...Role) bool {
	return m.Current().HasRole(roles...)
}

func (m *Manager) IsAdmin() bool   { return m.HasRole(RoleAdmin) }
func (m *Manager) IsShipper() bool { return m.HasRole(RoleShipper) }

// Close releases subscribers.
func (m *Manager) Close() error {
	return m.events.Close()
}

// Start restores the session from the stored token. currentView is the view
// the client is on. The returned future resolves with the settled session;
// it is already resolved when no profile fetch is needed.
func (m *Manager) Start(ctx context.Context, currentView string) *async.Future[Session] {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	gen := m.gen
	_ = m.fire(ctx, eventLogout, anonymous())

	token, ok := m.tokens.Get(ctx)
	if !ok {
		return async.Resolved(m.session.clone(), nil)
	}

	if currentView == m.loginView {
		m.log.DebugContext(ctx, "stored token kept, not restored on login view", logger.View(currentView))
		return async.Resolved(m.session.clone(), nil)
	}

	if err := m.fire(ctx, eventRestore, authenticating(token)); err != nil {
		return async.Resolved(m.session.clone(), err)
	}

	return async.Async(ctx, gen, m.restore)
}

// restore fetches the profile for a stored token and applies it if gen is
// still current.
func (m *Manager) restore(ctx context.Context, gen uint64) (Session, error) {
	var user User
	err := m.api.Get(ctx, m.endpoints.Profile, &user)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		m.log.InfoContext(ctx, "discarding stale profile fetch",
			logger.Generation(gen), slog.Uint64("current_generation", m.gen))
		if err != nil {
			return m.session.clone(), fmt.Errorf("%w: %w", ErrSuperseded, err)
		}
		return m.session.clone(), ErrSuperseded
	}

	if err != nil {
		m.log.WarnContext(ctx, "profile fetch failed", logger.Error(err))
		// A cancelled startup says nothing about the token itself.
		if !errors.Is(err, context.Canceled) {
			m.clearToken(ctx)
		}
		_ = m.fire(ctx, eventExpire, anonymous())
		return m.session.clone(), err
	}

	if err := m.fire(ctx, eventSucceed, authenticated(m.session.Token, user)); err != nil {
		return m.session.clone(), err
	}
	m.log.InfoContext(ctx, "session restored", logger.UserID(user.ID.String()), logger.Role(string(user.Role)))
	return m.session.clone(), nil
}

// Logout clears the token and user. Navigation afterwards is the caller's
// decision.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.clearToken(ctx)
	_ = m.fire(ctx, eventLogout, anonymous())
}

// Expire ends the session after the API rejected token. It is a no-op
// returning false when the stored token is no longer token, so a late 401
// for a replaced token cannot sign out a newer session. A request sent
// without a token expires nothing but still reports true.
func (m *Manager) Expire(ctx context.Context, token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, _ := m.tokens.Get(ctx); current != token {
		return false
	}
	if token == "" {
		return true
	}

	m.gen++
	m.clearToken(ctx)
	_ = m.fire(ctx, eventLogout, anonymous())
	m.log.InfoContext(ctx, "session expired by the API", logger.Generation(m.gen))
	return true
}

func (m *Manager) clearToken(ctx context.Context) {
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.ErrorContext(ctx, "failed to clear token", logger.Error(err))
	}
}

func (m *Manager) publishLocked(ctx context.Context) {
	_ = m.events.Broadcast(ctx, broadcast.Message[Session]{Data: m.session.clone()})
}
