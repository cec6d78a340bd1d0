package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/core/user"
)

// LoadStatus tells whether the initial restore from the Store has completed.
// Authorization decisions must not be trusted while still Loading.
type LoadStatus uint8

const (
	LoadStatusLoading LoadStatus = iota
	LoadStatusReady
)

type (
	// Notifier receives the user-facing notification for each login and
	// logout outcome.
	Notifier interface {
		Success(title, detail string)
		Failure(title, detail string)
	}

	// Navigator receives the navigation side effect after login and logout.
	Navigator interface {
		NavigateTo(path string)
	}

	// AuthClient performs the external authentication call.
	AuthClient interface {
		Login(ctx context.Context, username, password string) (Identity, string, error)
	}
)

// State is an immutable snapshot of the session for authorization.
type State struct {
	Status        LoadStatus
	Authenticated bool
	Role          user.Role
}

// Manager owns the session state: it restores it from the Store at startup
// and mutates it on login/logout. It is explicitly constructed and passed
// around; there is no package-level session.
//
// Login/logout are expected to be driven from a single event loop; the
// mutex only protects the projections against concurrent readers. A second
// Login while one is in flight is the caller's responsibility to prevent.
type Manager struct {
	store    Store
	client   AuthClient
	notifier Notifier
	nav      Navigator
	log      core.Logger

	mu     sync.RWMutex
	status LoadStatus
	ident  *Identity
	token  string
}

func NewManager(store Store, client AuthClient, notifier Notifier, nav Navigator, log core.Logger) *Manager {
	return &Manager{
		store:    store,
		client:   client,
		notifier: notifier,
		nav:      nav,
		log:      log,
		status:   LoadStatusLoading,
	}
}

// Restore loads a previously persisted session, then marks the manager
// Ready. It runs its restore at most once; later calls only re-assert Ready.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == LoadStatusReady {
		return
	}
	if ident, token, ok := m.store.Restore(); ok {
		m.ident = &ident
		m.token = token
	}
	m.status = LoadStatusReady
}

// Login authenticates against the backend. On success the session becomes
// Authenticated, is persisted, and exactly one success notification and one
// navigation are emitted. On failure the state and the store are untouched
// and exactly one failure notification is emitted.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	ident, token, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.notifier.Failure("Login failed", FailureReason(err))
		return err
	}

	m.mu.Lock()
	m.ident = &ident
	m.token = token
	m.mu.Unlock()

	if serr := m.store.Save(ident, token); serr != nil {
		// the in-memory session is still valid; it just won't survive a restart
		m.log.Warn("persisting session", serr)
	}

	m.notifier.Success("Logged in successfully", fmt.Sprintf("Welcome back, %s!", ident.FullName()))
	m.nav.NavigateTo(PostLoginPath(ident.Role))
	return nil
}

// Logout unconditionally drops the session. It is idempotent: logging out of
// an unauthenticated session lands in the same end state.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.ident = nil
	m.token = ""
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn("clearing persisted session", err)
	}

	m.notifier.Success("Logged out", "You have been logged out successfully")
	m.nav.NavigateTo(PathLogin)
}

// Snapshot returns the state for authorization decisions.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := State{Status: m.status, Authenticated: m.ident != nil}
	if m.ident != nil {
		st.Role = m.ident.Role
	}
	return st
}

func (m *Manager) Status() LoadStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ident != nil
}

// Identity returns the current identity, if authenticated.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ident == nil {
		return Identity{}, false
	}
	return *m.ident, true
}

// Token returns the credential token for backend calls; empty when
// unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Role returns the current role, if authenticated.
func (m *Manager) Role() (user.Role, bool) {
	ident, ok := m.Identity()
	return ident.Role, ok
}

func (m *Manager) IsAdmin() bool {
	role, ok := m.Role()
	return ok && role == user.RoleAdmin
}

// IsTrainerCapable reports whether the current session may manage trainings:
// admins and regular users both can.
func (m *Manager) IsTrainerCapable() bool {
	role, ok := m.Role()
	return ok && (role == user.RoleAdmin || role == user.RoleUser)
}

// FailureReason extracts a human-readable reason from a login error,
// preferring the backend's message when one was carried along.
func FailureReason(err error) string {
	var aerr *AuthError
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	return "Invalid username or password"
}
