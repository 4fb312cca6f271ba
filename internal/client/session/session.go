// Package session owns the client's authentication state: who is signed in
// and with which token. The state is restored from the credential store once
// at startup and afterwards changes only through Login and SignOut.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/client/api"
	"github.com/dmitrijs2005/snapfeed/internal/client/keystore"
	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/client/tokeninfo"
	"github.com/dmitrijs2005/snapfeed/internal/common"
	"github.com/dmitrijs2005/snapfeed/internal/logging"
)

const loginFailedTitle = "Login failed"

// Authenticator is the part of the backend API the session needs.
type Authenticator interface {
	SignIn(ctx context.Context, creds models.Credentials) (*api.SignInResponse, error)
}

// Alerter shows a message to the user.
type Alerter interface {
	Alert(title, message string)
}

// State is a copy of the session. An empty Token means no token.
type State struct {
	User            models.User
	Token           string
	IsAuthenticated bool
	Loading         bool
}

type Manager struct {
	store  keystore.Store
	auth   Authenticator
	alerts Alerter
	log    logging.Logger
	now    func() time.Time

	mu    sync.RWMutex
	state State

	bootstrap sync.Once
	ready     chan struct{}
}

// NewManager returns an unauthenticated manager that is still loading.
// Call Bootstrap once to restore a stored session.
func NewManager(store keystore.Store, auth Authenticator, alerts Alerter, log logging.Logger) *Manager {
	return &Manager{
		store:  store,
		auth:   auth,
		alerts: alerts,
		log:    log.With("component", "session"),
		now:    time.Now,
		state:  State{Loading: true},
		ready:  make(chan struct{}),
	}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.state
	s.User = s.User.Clone()
	return s
}

// Ready is closed when Bootstrap has finished.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Bootstrap restores the session from the credential store. Only the first
// call does anything. Failures leave the session unauthenticated and are
// logged, never returned.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.bootstrap.Do(func() {
		defer close(m.ready)

		user, token, err := m.restore(ctx)
		switch {
		case err != nil:
			m.log.Error(ctx, "failed to restore session", "error", err)
		case token == "":
			m.log.Debug(ctx, "no stored session")
		default:
			m.warnIfExpired(ctx, token)
			m.log.Info(ctx, "session restored", "email", user.Email())
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if err == nil && token != "" {
			m.state.User = user
			m.state.Token = token
			m.state.IsAuthenticated = true
		}
		m.state.Loading = false
	})
}

func (m *Manager) restore(ctx context.Context) (models.User, string, error) {
	tok, err := m.store.Get(ctx, common.TokenService)
	if err != nil {
		return nil, "", fmt.Errorf("read token: %w", err)
	}
	usr, err := m.store.Get(ctx, common.UserService)
	if err != nil {
		return nil, "", fmt.Errorf("read user: %w", err)
	}
	if tok == nil || usr == nil || tok.Password == "" {
		return nil, "", nil
	}

	user, err := models.ParseUser([]byte(usr.Password))
	if err != nil {
		return nil, "", err
	}
	return user, tok.Password, nil
}

func (m *Manager) warnIfExpired(ctx context.Context, token string) {
	info, err := tokeninfo.Inspect(token)
	if err != nil {
		return
	}
	if info.Expired(m.now()) {
		m.log.Warn(ctx, "stored token has expired", "expired_at", info.ExpiresAt)
	}
}

// Login signs in with creds, persists the token and user, and marks the
// session authenticated. Any failure raises exactly one alert, leaves the
// session as it was and is returned.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) error {
	user, token, err := m.signIn(ctx, creds)
	if err != nil {
		m.log.Warn(ctx, "login failed", "email", creds.Email, "error", err)
		m.alerts.Alert(loginFailedTitle, loginMessage(err))
		return err
	}

	m.mu.Lock()
	m.state.User = user
	m.state.Token = token
	m.state.IsAuthenticated = true
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "email", user.Email())
	return nil
}

func (m *Manager) signIn(ctx context.Context, creds models.Credentials) (models.User, string, error) {
	resp, err := m.auth.SignIn(ctx, creds)
	if err != nil {
		return nil, "", fmt.Errorf("sign in error: %w", err)
	}
	if resp == nil || resp.Token == "" {
		return nil, "", common.ErrMissingToken
	}

	user := resp.User
	if user == nil {
		user = models.NewUser(creds.Email)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode user: %w", err)
	}

	if err := m.store.Set(ctx, creds.Email, resp.Token, common.TokenService); err != nil {
		return nil, "", fmt.Errorf("failed to save token: %w", err)
	}
	if err := m.store.Set(ctx, creds.Email, string(data), common.UserService); err != nil {
		return nil, "", fmt.Errorf("failed to save user: %w", err)
	}
	return user.Clone(), resp.Token, nil
}

func loginMessage(err error) string {
	if errors.Is(err, common.ErrMissingToken) {
		return "No token received from the server"
	}
	return api.Message(err)
}

// SignOut clears both stored secrets and resets the session. Each secret is
// cleared even if the other fails; store errors are only logged.
func (m *Manager) SignOut(ctx context.Context) {
	for _, service := range []string{common.TokenService, common.UserService} {
		if err := m.store.Reset(ctx, service); err != nil {
			m.log.Error(ctx, "failed to clear credential", "service", service, "error", err)
		}
	}

	m.mu.Lock()
	m.state = State{Loading: m.state.Loading}
	m.mu.Unlock()

	m.log.Info(ctx, "signed out")
}
