// Package session owns the client's belief about who is using the
// application: restore on start, login, logout, refresh, and the role-based
// authorization every view consults. It is the single source of truth; views
// never construct their own session state.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/citefix/citefix-cli/internal/api"
	"github.com/citefix/citefix-cli/internal/domain"
	"github.com/citefix/citefix-cli/internal/notify"
)

// State is the session lifecycle position. Modeling it as one enum instead
// of isLoggedIn/isLoading booleans rules out contradictory combinations.
type State int

const (
	// StateInitializing: restore not finished, identity unknown. Views
	// render a neutral skeleton and start no privileged fetch.
	StateInitializing State = iota
	// StateAnonymous: nobody is logged in.
	StateAnonymous
	// StateAuthenticated: a validated user is logged in.
	StateAuthenticated
	// StateRefreshing: authenticated, with a user re-fetch in flight.
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Backend is the slice of the API client the session manager depends on.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Me(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

const remoteLogoutTimeout = 5 * time.Second

// Manager is the injected session service. All access goes through its
// accessors; mutation happens only in Initialize, Login, Logout and
// RefreshUser.
type Manager struct {
	backend  Backend
	store    *Store
	notifier notify.Notifier
	log      zerolog.Logger

	mu          sync.RWMutex
	state       State
	token       string
	user        *domain.User
	initialized bool
	background  sync.WaitGroup

	// remoteLogout is swapped out in tests to observe the fire-and-forget
	// backend call without sleeping.
	remoteLogout func(token string)
}

// NewManager creates a session manager in the Initializing state.
func NewManager(backend Backend, store *Store, notifier notify.Notifier, log zerolog.Logger) *Manager {
	m := &Manager{
		backend:  backend,
		store:    store,
		notifier: notifier,
		log:      log,
		state:    StateInitializing,
	}
	m.remoteLogout = m.defaultRemoteLogout
	return m
}

// Initialize restores a persisted session, validating the stored token
// against the backend before trusting it. It runs once per process; the
// state leaves Initializing exactly once. No page-level privileged fetch may
// start before it returns.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return nil
	}
	m.initialized = true
	m.mu.Unlock()

	creds, err := m.store.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("stored session unreadable, purging")
		m.invalidate()
		return nil
	}
	if creds == nil {
		m.setAnonymous()
		return nil
	}

	if tokenExpired(creds.Token, time.Now()) {
		m.log.Debug().Msg("stored token already expired, purging")
		m.invalidate()
		return nil
	}

	// Expose the stored token so the validation call carries it.
	m.mu.Lock()
	m.token = creds.Token
	m.mu.Unlock()

	if _, err := m.backend.Me(ctx); err != nil {
		m.log.Info().Err(err).Msg("stored token rejected, purging")
		m.invalidate()
		return nil
	}

	// Token accepted: trust the persisted user object.
	m.mu.Lock()
	user := creds.User
	m.user = &user
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.log.Debug().Str("user_id", creds.User.ID).Msg("session restored")
	return nil
}

// Login authenticates against the backend. On success the credentials are
// persisted as one unit and the session becomes Authenticated. On failure
// nothing changes, neither the state nor the store; the failure is notified
// with the backend's message (or a generic fallback) and the error is
// returned so the caller's own form handling can react.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	result, err := m.backend.Login(ctx, email, password)
	if err != nil {
		m.notifier.Error("Erreur de connexion", api.UserMessage(err, "Erreur lors de la connexion"))
		return err
	}

	if err := m.store.Save(Credentials{Token: result.Token, User: result.User}); err != nil {
		m.notifier.Error("Erreur de connexion", "Impossible d'enregistrer la session")
		return err
	}

	m.mu.Lock()
	m.token = result.Token
	user := result.User
	m.user = &user
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.log.Info().Str("user_id", result.User.ID).Msg("logged in")
	m.notifier.Success("Connexion réussie", "Bienvenue, "+result.User.FirstName+" !")
	return nil
}

// Logout purges the persisted credentials and resets to Anonymous. The
// backend is told to discard the token fire-and-forget; its failure never
// prevents the local logout from completing.
func (m *Manager) Logout() {
	m.mu.Lock()
	token := m.token
	m.token = ""
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stored session")
	}

	if token != "" {
		m.background.Add(1)
		go func() {
			defer m.background.Done()
			m.remoteLogout(token)
		}()
	}

	m.notifier.Success("Déconnexion réussie", "Vous avez été déconnecté avec succès")
}

// Wait blocks until best-effort background calls finish. Short-lived
// processes call it before exiting so the backend logout gets a chance to
// leave the building; its outcome still cannot fail the local logout.
func (m *Manager) Wait() {
	m.background.Wait()
}

func (m *Manager) defaultRemoteLogout(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteLogoutTimeout)
	defer cancel()
	if err := m.backend.Logout(ctx, token); err != nil {
		m.log.Debug().Err(err).Msg("best-effort backend logout failed")
	}
}

// RefreshUser re-fetches the current user and updates both the in-memory
// and the persisted copy. An unrefreshable session is an invalid session:
// any failure triggers a full Logout.
func (m *Manager) RefreshUser(ctx context.Context) error {
	m.mu.Lock()
	if m.token == "" {
		m.mu.Unlock()
		return nil
	}
	token := m.token
	if m.state == StateAuthenticated {
		m.state = StateRefreshing
	}
	m.mu.Unlock()

	user, err := m.backend.Me(ctx)
	if err != nil {
		m.log.Info().Err(err).Msg("user refresh failed, logging out")
		m.Logout()
		return err
	}

	if err := m.store.Save(Credentials{Token: token, User: *user}); err != nil {
		m.log.Warn().Err(err).Msg("failed to persist refreshed user")
	}

	m.mu.Lock()
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()
	return nil
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.token = ""
	m.user = nil
	m.mu.Unlock()
}

// invalidate purges storage and resets to Anonymous, without the logout
// notification: nobody was logged in from the user's point of view.
func (m *Manager) invalidate() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stored session")
	}
	m.setAnonymous()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsLoggedIn reports whether a user is authenticated. True implies
// CurrentUser is non-nil.
func (m *Manager) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateAuthenticated || m.state == StateRefreshing
}

// IsAdmin reports whether the current user carries the admin role. Always
// derived from the user, never stored.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.IsAdmin()
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// Token returns the current bearer token, or "" when anonymous. The API
// client uses this as its token source.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}
