// Package session drives the async auth operations: each exported method
// wraps one gateway call in the pending/fulfilled/rejected lifecycle of the
// state store, translating well-known provider errors into user-facing
// messages at the call site. It also owns the startup session bootstrap.
package session

import (
	"context"
	"time"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/localdb"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/services"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/state"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/logging"
)

// Manager binds the auth gateway to the state store. All methods are safe
// for concurrent use; the store serializes state mutation.
//
// cache and sessions are optional: with a nil cache the manager simply never
// persists sessions across runs (tests run this way).
type Manager struct {
	store    *state.Store
	auth     services.AuthService
	sessions provider.IdentityProvider
	cache    *localdb.SessionCache
	log      logging.Logger
}

// NewManager wires a manager. sessions is the provider adapter the cached
// session secret is restored into on bootstrap; cache may be nil.
func NewManager(store *state.Store, auth services.AuthService, sessions provider.IdentityProvider, cache *localdb.SessionCache, log logging.Logger) *Manager {
	return &Manager{store: store, auth: auth, sessions: sessions, cache: cache, log: log}
}

// LoginUser authenticates and loads the account behind the new session, so
// the fulfilled state satisfies the "authStatus implies user" invariant in
// one transition.
func (m *Manager) LoginUser(ctx context.Context, email, password string) error {
	m.store.Dispatch(state.PendingAction(state.OpLoginUser))

	sess, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.store.Dispatch(state.RejectedAction(state.OpLoginUser, loginMessage(err)))
		return err
	}

	user, err := m.auth.GetCurrentUser(ctx)
	if err != nil {
		m.store.Dispatch(state.RejectedAction(state.OpLoginUser, userMessage(err)))
		return err
	}

	m.store.Dispatch(state.FulfilledAction(state.OpLoginUser, user, sess))
	m.persistSession(ctx, sess)
	return nil
}

// LogoutUser destroys the current session. A provider 401 means the session
// is already gone, which counts as success.
func (m *Manager) LogoutUser(ctx context.Context) error {
	m.store.Dispatch(state.PendingAction(state.OpLogoutUser))

	if err := m.auth.Logout(ctx); err != nil && !provider.IsCode(err, 401) {
		m.store.Dispatch(state.RejectedAction(state.OpLogoutUser, userMessage(err)))
		return err
	}

	m.store.Dispatch(state.FulfilledAction(state.OpLogoutUser, nil, nil))
	m.clearCachedSession(ctx)
	return nil
}

// FetchCurrentUser revalidates the session against the backend. Rejection is
// recorded as "logged out", not as a fatal error.
func (m *Manager) FetchCurrentUser(ctx context.Context) error {
	m.store.Dispatch(state.PendingAction(state.OpFetchCurrentUser))

	user, err := m.auth.GetCurrentUser(ctx)
	if err != nil {
		m.store.Dispatch(state.RejectedAction(state.OpFetchCurrentUser, userMessage(err)))
		return err
	}

	m.store.Dispatch(state.FulfilledAction(state.OpFetchCurrentUser, user, nil))
	return nil
}

// SignupUser runs the signup chain. On success the user is NOT logged in;
// the verification email flow comes first.
func (m *Manager) SignupUser(ctx context.Context, email, password, username, name string) error {
	m.store.Dispatch(state.PendingAction(state.OpSignupUser))

	if _, err := m.auth.SignUp(ctx, email, password, username, name); err != nil {
		m.store.Dispatch(state.RejectedAction(state.OpSignupUser, signupMessage(err)))
		return err
	}

	m.store.Dispatch(state.FulfilledAction(state.OpSignupUser, nil, nil))
	return nil
}

// CreateTempSession opens a session without marking the user authenticated,
// for flows that need one authenticated call (e.g. resending verification).
func (m *Manager) CreateTempSession(ctx context.Context, email, password string) error {
	m.store.Dispatch(state.PendingAction(state.OpCreateTempSession))

	sess, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.store.Dispatch(state.RejectedAction(state.OpCreateTempSession, loginMessage(err)))
		return err
	}

	m.store.Dispatch(state.FulfilledAction(state.OpCreateTempSession, nil, sess))
	return nil
}

// DeleteSession tears down the current (usually temporary) session.
func (m *Manager) DeleteSession(ctx context.Context) error {
	m.store.Dispatch(state.PendingAction(state.OpDeleteSession))

	if err := m.auth.Logout(ctx); err != nil && !provider.IsCode(err, 401) {
		m.store.Dispatch(state.RejectedAction(state.OpDeleteSession, userMessage(err)))
		return err
	}

	m.store.Dispatch(state.FulfilledAction(state.OpDeleteSession, nil, nil))
	return nil
}

func (m *Manager) RequestPasswordReset(ctx context.Context, email, resetURL string) error {
	return m.run(ctx, state.OpRequestPasswordReset, func(ctx context.Context) error {
		return m.auth.RequestPasswordReset(ctx, email, resetURL)
	})
}

func (m *Manager) CompletePasswordReset(ctx context.Context, userID, secret, newPassword string) error {
	return m.run(ctx, state.OpCompletePasswordReset, func(ctx context.Context) error {
		return m.auth.CompletePasswordReset(ctx, userID, secret, newPassword)
	})
}

func (m *Manager) RequestEmailVerification(ctx context.Context, verifyURL string) error {
	return m.run(ctx, state.OpRequestEmailVerification, func(ctx context.Context) error {
		return m.auth.RequestEmailVerification(ctx, verifyURL)
	})
}

func (m *Manager) CompleteEmailVerification(ctx context.Context, userID, secret string) error {
	return m.run(ctx, state.OpCompleteEmailVerification, func(ctx context.Context) error {
		return m.auth.CompleteEmailVerification(ctx, userID, secret)
	})
}

// run is the shared lifecycle for operations whose outcome carries no
// user/session payload.
func (m *Manager) run(ctx context.Context, op state.Op, fn func(ctx context.Context) error) error {
	m.store.Dispatch(state.PendingAction(op))
	if err := fn(ctx); err != nil {
		m.store.Dispatch(state.RejectedAction(op, userMessage(err)))
		return err
	}
	m.store.Dispatch(state.FulfilledAction(op, nil, nil))
	return nil
}

// Bootstrap restores a cached session into the provider adapter and then
// revalidates it with FetchCurrentUser. The outcome is always observable in
// the store: IsLoadingInitial drops to false and either AuthStatus or Err is
// set. A missing cache still runs the fetch so the "not logged in" state is
// confirmed rather than assumed.
func (m *Manager) Bootstrap(ctx context.Context) error {
	if m.cache != nil {
		rec, err := m.cache.Load(ctx)
		if err != nil {
			m.log.Warn(ctx, "session bootstrap: cache read failed", "error", err)
		} else if rec != nil {
			m.sessions.SetSession(rec.Secret)
			if rec.JWTStale(time.Now()) {
				m.refreshJWT(ctx, rec)
			}
		}
	}
	return m.FetchCurrentUser(ctx)
}

// Start runs Bootstrap in the background. UI code must treat AuthStatus as
// eventually consistent until IsLoadingInitial is false.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		if err := m.Bootstrap(ctx); err != nil {
			m.log.Info(ctx, "session bootstrap: no restorable session", "error", err)
		}
	}()
}

// refreshJWT mints a fresh short-lived token and re-persists the cache row.
// Failures are logged and ignored; the session secret alone is enough for
// account calls.
func (m *Manager) refreshJWT(ctx context.Context, rec *localdb.CachedSession) {
	token, err := m.auth.CreateJWT(ctx)
	if err != nil {
		m.log.Warn(ctx, "session bootstrap: jwt refresh failed", "error", err)
		return
	}
	rec.JWT = token
	if exp, err := localdb.TokenExpiry(token); err == nil {
		rec.JWTExpiresAt = exp
	}
	if err := m.cache.Save(ctx, rec); err != nil {
		m.log.Warn(ctx, "session bootstrap: cache write failed", "error", err)
	}
}

func (m *Manager) persistSession(ctx context.Context, sess *provider.Session) {
	if m.cache == nil || sess == nil {
		return
	}
	rec := &localdb.CachedSession{SessionID: sess.ID, UserID: sess.UserID, Secret: sess.Secret}
	if token, err := m.auth.CreateJWT(ctx); err == nil {
		rec.JWT = token
		if exp, err := localdb.TokenExpiry(token); err == nil {
			rec.JWTExpiresAt = exp
		}
	} else {
		m.log.Warn(ctx, "login: jwt issuance failed", "error", err)
	}
	if err := m.cache.Save(ctx, rec); err != nil {
		m.log.Warn(ctx, "login: session cache write failed", "error", err)
	}
}

func (m *Manager) clearCachedSession(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Clear(ctx); err != nil {
		m.log.Warn(ctx, "logout: session cache clear failed", "error", err)
	}
}
