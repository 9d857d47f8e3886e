package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hmaulana/maintenance-management/internal"
	"github.com/hmaulana/maintenance-management/internal/core/events"
	"github.com/hmaulana/maintenance-management/internal/core/identity"
)

// UserPatch carries a shallow profile update. Nil fields are left alone.
type UserPatch struct {
	Name       *string
	Email      *string
	Role       *identity.Role
	FirstLogin *bool
}

// Manager owns the in-memory session state and keeps it synchronized with
// the durable store. Construct one per application composition point and
// inject it; it is not a package-level singleton.
//
// Store writes happen before the in-memory user is updated, so a consumer
// reacting to an in-memory change may assume the store already reflects
// it. Overlapping Login/Logout calls are a caller error: individual
// transitions are atomic under the mutex, but the manager does not
// serialize whole operations against each other.
type Manager struct {
	store  Store
	authn  Authenticator
	bus    *events.Bus
	logger *slog.Logger

	mu      sync.RWMutex
	user    *identity.User
	loading bool
	lastErr string
}

// NewManager restores any persisted session synchronously before
// returning, so the first consumer already sees the authenticated state.
// A nil store or authenticator is an integration fault and panics.
func NewManager(store Store, authn Authenticator, bus *events.Bus, logger *slog.Logger) *Manager {
	if store == nil {
		panic("session: NewManager called with nil store")
	}
	if authn == nil {
		panic("session: NewManager called with nil authenticator")
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		store:  store,
		authn:  authn,
		bus:    bus,
		logger: logger,
	}
	m.restore(context.Background())
	return m
}

// restore reads the persisted user and token. Anything short of a fully
// valid pair leaves the manager unauthenticated; a corrupt or partial pair
// is purged so the store returns to the both-present-or-both-absent
// invariant.
func (m *Manager) restore(ctx context.Context) {
	rawUser, userErr := m.store.Get(ctx, StoreKeyUser)
	_, tokenErr := m.store.Get(ctx, StoreKeyToken)

	userMissing := errors.Is(userErr, ErrNotFound)
	tokenMissing := errors.Is(tokenErr, ErrNotFound)

	if userMissing && tokenMissing {
		return
	}

	if userErr != nil && !userMissing {
		m.logger.Warn("session store unreachable during restore, starting unauthenticated", "error", userErr)
		return
	}
	if tokenErr != nil && !tokenMissing {
		m.logger.Warn("session store unreachable during restore, starting unauthenticated", "error", tokenErr)
		return
	}

	if userMissing != tokenMissing {
		m.quarantine(ctx, "partial session: one of user/token missing")
		return
	}

	user, err := identity.DecodeUser([]byte(rawUser))
	if err != nil {
		m.quarantine(ctx, err.Error())
		return
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.logger.Info("session restored", "user_id", user.ID, "role", user.Role)
}

// quarantine purges both store entries and clears the in-memory user. Used
// for corrupt or tampered persisted sessions; silent from the user's
// perspective apart from landing on the login page.
func (m *Manager) quarantine(ctx context.Context, reason string) {
	m.logger.Warn("purging corrupt session", "reason", reason)

	m.purgeStore(ctx)

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(ctx, events.NewSessionCorruptedEvent(reason))
	}
}

// Invalidate is the hard reset used by the route guard when the in-memory
// session has mutated into an invalid shape.
func (m *Manager) Invalidate(ctx context.Context, reason string) {
	m.quarantine(ctx, reason)
}

func (m *Manager) purgeStore(ctx context.Context) {
	if err := m.store.Remove(ctx, StoreKeyUser); err != nil {
		m.logger.Error("failed to remove persisted user", "error", err)
	}
	if err := m.store.Remove(ctx, StoreKeyToken); err != nil {
		m.logger.Error("failed to remove persisted token", "error", err)
	}
}

// Login delegates credential verification to the authentication
// collaborator, persists the resulting session, and only then adopts the
// user in memory. A structurally valid response carrying an unrecognized
// role is a hard failure: the manager never adopts a user it cannot place
// in the permission policy table.
func (m *Manager) Login(ctx context.Context, email, password string) (*identity.User, error) {
	m.mu.Lock()
	m.loading = true
	m.lastErr = ""
	m.mu.Unlock()

	user, token, err := m.authn.Login(ctx, email, password)
	if err != nil {
		m.logger.Warn("login rejected", "email", email, "error", err)
		if m.bus != nil {
			m.bus.Publish(ctx, events.NewLoginFailedEvent(email, err.Error()))
		}
		return nil, m.failLogin(err.Error(), err)
	}

	if user == nil || !user.Role.Valid() {
		role := ""
		if user != nil {
			role = string(user.Role)
		}
		// Contract violation by the authentication service, logged
		// distinctly from ordinary credential failures.
		m.logger.Error("authentication service returned a user outside the closed role set",
			"email", email, "role", role)
		if m.bus != nil {
			m.bus.Publish(ctx, events.NewInvalidRoleEvent(email, role))
		}
		return nil, m.failLogin(internal.ErrInvalidRole.Message, internal.ErrInvalidRole)
	}

	encoded, err := user.Encode()
	if err != nil {
		return nil, m.failLogin("failed to serialize session", err)
	}
	if err := m.store.Set(ctx, StoreKeyUser, string(encoded)); err != nil {
		return nil, m.failLogin("failed to persist session", err)
	}
	if err := m.store.Set(ctx, StoreKeyToken, token); err != nil {
		return nil, m.failLogin("failed to persist session", err)
	}

	m.mu.Lock()
	m.user = user.Clone()
	m.loading = false
	m.mu.Unlock()

	m.logger.Info("login succeeded", "user_id", user.ID, "role", user.Role)
	return user.Clone(), nil
}

func (m *Manager) failLogin(message string, err error) error {
	m.mu.Lock()
	m.lastErr = message
	m.loading = false
	m.mu.Unlock()
	return err
}

// Logout always succeeds locally: a failing collaborator call is logged
// and ignored, the store entries are purged, and the in-memory user is
// cleared. Calling it while already unauthenticated is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.authn.Logout(ctx); err != nil {
		m.logger.Warn("logout collaborator failed, clearing local session anyway", "error", err)
	}

	m.purgeStore(ctx)

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
}

// UpdateUser merges the patch into the current user, re-validates the
// merged role, persists the result, and only then replaces the in-memory
// user. A no-op when no user is loaded.
func (m *Manager) UpdateUser(ctx context.Context, patch UserPatch) (*identity.User, error) {
	m.mu.RLock()
	current := m.user.Clone()
	m.mu.RUnlock()

	if current == nil {
		return nil, nil
	}

	merged := *current
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Role != nil {
		merged.Role = *patch.Role
	}
	if patch.FirstLogin != nil {
		merged.FirstLogin = *patch.FirstLogin
	}

	if !merged.Role.Valid() {
		return nil, internal.NewInternalError("profile update would corrupt the session role", nil)
	}

	encoded, err := merged.Encode()
	if err != nil {
		return nil, internal.NewInternalError("failed to serialize updated session", err)
	}
	if err := m.store.Set(ctx, StoreKeyUser, string(encoded)); err != nil {
		return nil, internal.NewInternalError("failed to persist updated session", err)
	}

	m.mu.Lock()
	m.user = merged.Clone()
	m.mu.Unlock()

	return merged.Clone(), nil
}

// ClearError resets the last error message only.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.lastErr = ""
	m.mu.Unlock()
}

// User returns a copy of the current user, or nil when unauthenticated.
func (m *Manager) User() *identity.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// Snapshot returns the full state under one lock acquisition.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		User:          m.user.Clone(),
		Loading:       m.loading,
		Authenticated: m.user != nil,
		LastError:     m.lastErr,
	}
}
