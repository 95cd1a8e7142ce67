package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cbcbeauty/storefront/core/logger"
	"github.com/cbcbeauty/storefront/core/store"
)

// Backend is the subset of the REST client the session manager needs.
type Backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Manager owns the current session. Safe for concurrent use; the token
// accessor doubles as the API client's token source.
type Manager struct {
	mu    sync.RWMutex
	token string
	user  *User

	store   store.Store
	backend Backend
	logger  *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger configures structured logging for the manager.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// NewManager creates an unauthenticated session manager. Call Restore once
// at startup to revalidate any persisted session.
func NewManager(st store.Store, backend Backend, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:   st,
		backend: backend,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore reads the persisted token and profile and revalidates them with a
// lightweight authenticated probe. On any failure (absent keys, unparseable
// profile, network error, backend rejection) the persisted session is
// cleared and the manager stays unauthenticated. Failures are silent since
// they represent routine expiry. Intended to run exactly once at startup.
func (m *Manager) Restore(ctx context.Context) {
	raw, err := m.store.Get(ctx, store.KeyToken)
	if err != nil {
		m.clearPersisted(ctx)
		return
	}
	token := string(raw)

	var user User
	if err := store.GetJSON(ctx, m.store, store.KeyUser, &user); err != nil {
		m.clearPersisted(ctx)
		return
	}

	// Adopt the token before probing so the probe goes out authenticated.
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	var probe []struct{}
	if err := m.backend.Get(ctx, "/products", &probe); err != nil {
		m.logger.Debug("stored session rejected",
			logger.Component("session"),
			logger.Error(err))
		m.Logout(ctx)
		return
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()

	m.logger.Info("session restored",
		logger.Component("session"),
		logger.UserID(user.ID))
}

// Login authenticates with email and password. On success the returned token
// and profile are persisted and adopted as the current session.
func (m *Manager) Login(ctx context.Context, creds Credentials) Result {
	if msg := validateCredentials(creds); msg != "" {
		return failure(msg)
	}
	return m.authenticate(ctx, "/users/login", creds, "Login failed")
}

// Register signs up a new user. The backend returns token and profile as
// with login, so the session is adopted without a separate login step.
func (m *Manager) Register(ctx context.Context, reg Registration) Result {
	if msg := validateRegistration(reg); msg != "" {
		return failure(msg)
	}
	return m.authenticate(ctx, "/users", reg, "Registration failed")
}

// GoogleLogin exchanges a federated identity payload for this application's
// own token. Same contract as Login.
func (m *Manager) GoogleLogin(ctx context.Context, payload any) Result {
	return m.authenticate(ctx, "/users/google", payload, "Google login failed")
}

// Logout clears the persisted token and profile and the in-memory session
// synchronously. No backend call is required to succeed.
func (m *Manager) Logout(ctx context.Context) {
	m.clearPersisted(ctx)

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
}

// Current returns a copy of the authenticated profile, or nil.
func (m *Manager) Current() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the current bearer token, empty when unauthenticated.
// Satisfies the API client's token source contract.
func (m *Manager) Token(_ context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.token != ""
}

// IsAdmin reports whether the current profile carries the admin role tag.
// False when unauthenticated.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.Type == RoleAdmin
}

// IsCustomer reports whether the current profile carries the customer role
// tag. False when unauthenticated.
func (m *Manager) IsCustomer() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.Type == RoleCustomer
}

// authenticate posts the payload, persists token+profile, and adopts them.
// Transport and backend errors are converted into the uniform Result; they
// never propagate to the caller.
func (m *Manager) authenticate(ctx context.Context, path string, payload any, fallback string) Result {
	var resp authResponse
	if err := m.backend.Post(ctx, path, payload, &resp); err != nil {
		m.logger.Debug("authentication rejected",
			logger.Component("session"),
			logger.Error(err))
		return failure(backendMessage(err, fallback))
	}

	if resp.Token == "" {
		return failure(fallback)
	}

	if err := m.persist(ctx, resp.Token, resp.User); err != nil {
		m.logger.Warn("failed to persist session",
			logger.Component("session"),
			logger.Error(err))
		return failure(fallback)
	}

	m.mu.Lock()
	m.token = resp.Token
	u := resp.User
	m.user = &u
	m.mu.Unlock()

	m.logger.Info("session established",
		logger.Component("session"),
		logger.UserID(resp.User.ID))

	user := resp.User
	return Result{Success: true, User: &user}
}

// persist writes token and profile as a pair. If the profile write fails the
// token is rolled back, preserving the no-partial-session invariant.
func (m *Manager) persist(ctx context.Context, token string, user User) error {
	if err := m.store.Set(ctx, store.KeyToken, []byte(token)); err != nil {
		return err
	}
	if err := store.SetJSON(ctx, m.store, store.KeyUser, user); err != nil {
		_ = m.store.Delete(ctx, store.KeyToken)
		return err
	}
	return nil
}

func (m *Manager) clearPersisted(ctx context.Context) {
	_ = m.store.Delete(ctx, store.KeyToken)
	_ = m.store.Delete(ctx, store.KeyUser)
}

// backendMessage extracts the backend's human-readable message when present.
// The error type is matched structurally so this package stays independent of
// the transport implementation.
func backendMessage(err error, fallback string) string {
	var be interface{ BackendMessage() string }
	if errors.As(err, &be) && be.BackendMessage() != "" {
		return be.BackendMessage()
	}
	return fallback
}
