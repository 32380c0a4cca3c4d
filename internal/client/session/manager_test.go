package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/localdb"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/state"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/logging"
)

// fakeAuth implements services.AuthService with per-call results.
type fakeAuth struct {
	LoginRet *provider.Session
	LoginErr error

	SignUpErr error

	LogoutErr error

	UserRet *provider.Account
	UserErr error

	RequestResetErr  error
	CompleteResetErr error
	RequestVerifyErr error
	CompleteVerErr   error

	JWTRet string
	JWTErr error

	Calls []string
}

func (f *fakeAuth) record(name string) { f.Calls = append(f.Calls, name) }

func (f *fakeAuth) SignUp(ctx context.Context, email, password, username, name string) (*provider.Account, error) {
	f.record("SignUp")
	if f.SignUpErr != nil {
		return nil, f.SignUpErr
	}
	return &provider.Account{ID: "u1", Email: email}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*provider.Session, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginRet != nil {
		return f.LoginRet, nil
	}
	return &provider.Session{ID: "s1", UserID: "u1", Secret: "secret"}, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.record("Logout")
	return f.LogoutErr
}

func (f *fakeAuth) GetCurrentUser(ctx context.Context) (*provider.Account, error) {
	f.record("GetCurrentUser")
	if f.UserErr != nil {
		return nil, f.UserErr
	}
	if f.UserRet != nil {
		return f.UserRet, nil
	}
	return &provider.Account{ID: "u1", Email: "a@b.com"}, nil
}

func (f *fakeAuth) RequestPasswordReset(ctx context.Context, email, resetURL string) error {
	f.record("RequestPasswordReset")
	return f.RequestResetErr
}

func (f *fakeAuth) CompletePasswordReset(ctx context.Context, userID, secret, newPassword string) error {
	f.record("CompletePasswordReset")
	return f.CompleteResetErr
}

func (f *fakeAuth) RequestEmailVerification(ctx context.Context, verifyURL string) error {
	f.record("RequestEmailVerification")
	return f.RequestVerifyErr
}

func (f *fakeAuth) CompleteEmailVerification(ctx context.Context, userID, secret string) error {
	f.record("CompleteEmailVerification")
	return f.CompleteVerErr
}

func (f *fakeAuth) CheckEmailVerification(ctx context.Context) (bool, error) { return false, nil }

func (f *fakeAuth) UpdateEmail(ctx context.Context, newEmail, password string) (*provider.Account, error) {
	return nil, nil
}
func (f *fakeAuth) UpdateUsername(ctx context.Context, userID, username string) error { return nil }
func (f *fakeAuth) UpdatePassword(ctx context.Context, newPassword, oldPassword string) error {
	return nil
}
func (f *fakeAuth) UpdatePreferences(ctx context.Context, prefs *provider.Preferences) (*provider.Account, error) {
	return nil, nil
}
func (f *fakeAuth) GetPreferences(ctx context.Context) (*provider.Preferences, error) {
	return nil, nil
}
func (f *fakeAuth) CheckSession(ctx context.Context) bool { return false }
func (f *fakeAuth) CreateJWT(ctx context.Context) (string, error) {
	f.record("CreateJWT")
	return f.JWTRet, f.JWTErr
}
func (f *fakeAuth) DeleteAccount(ctx context.Context, userID string) error { return nil }

// fakeSessions records the secret restored into the provider adapter.
// Unused IdentityProvider methods come from the embedded nil interface and
// panic when hit, which is what we want in tests.
type fakeSessions struct {
	provider.IdentityProvider
	restored []string
}

func (f *fakeSessions) SetSession(secret string) { f.restored = append(f.restored, secret) }
func (f *fakeSessions) ClearSession()            {}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func newManager(a *fakeAuth, cache *localdb.SessionCache) (*Manager, *state.Store, *fakeSessions) {
	store := state.NewStore()
	sessions := &fakeSessions{}
	return NewManager(store, a, sessions, cache, testLogger()), store, sessions
}

func TestLoginUser_Fulfilled(t *testing.T) {
	a := &fakeAuth{}
	m, store, _ := newManager(a, nil)

	require.NoError(t, m.LoginUser(context.Background(), "a@b.com", "password1"))

	s := store.State()
	require.True(t, s.AuthStatus)
	require.NotNil(t, s.User)
	require.NotNil(t, s.Session)
	require.False(t, s.IsLoading)
	require.Empty(t, s.Err)
	require.Equal(t, []string{"Login", "GetCurrentUser"}, a.Calls)
}

func TestLoginUser_BadCredentials_PreservesPriorState(t *testing.T) {
	a := &fakeAuth{LoginErr: &provider.Error{Message: "Invalid credentials. Please check the email and password.", Code: 401, Type: provider.TypeUserInvalidCredent}}
	m, store, _ := newManager(a, nil)

	// Simulate an earlier session still in the store.
	prior := &provider.Account{ID: "u0"}
	store.Dispatch(state.Action{Op: state.OpLogin, User: prior, Session: &provider.Session{ID: "s0"}})

	err := m.LoginUser(context.Background(), "a@b.com", "wrong-password")
	require.Error(t, err)

	s := store.State()
	require.Equal(t, prior, s.User)
	require.Equal(t, "s0", s.Session.ID)
	require.True(t, s.AuthStatus)
	require.False(t, s.IsLoading)
	require.Equal(t, "Invalid email or password", s.Err)
}

// Login with a short password passes local validation (presence only) and
// reaches the provider, whose 400 maps to the generic credentials message.
func TestLoginUser_ShortPassword_Provider400(t *testing.T) {
	a := &fakeAuth{LoginErr: &provider.Error{Message: "Invalid `password` param", Code: 400, Type: "general_argument_invalid"}}
	m, store, _ := newManager(a, nil)

	err := m.LoginUser(context.Background(), "a@b.com", "short")
	require.Error(t, err)
	require.Equal(t, []string{"Login"}, a.Calls)
	require.Equal(t, "Invalid email or password", store.State().Err)
}

func TestLoginUser_RateLimited(t *testing.T) {
	a := &fakeAuth{LoginErr: &provider.Error{Message: "Rate limit exceeded", Code: 429, Type: provider.TypeRateLimitExceeded}}
	m, store, _ := newManager(a, nil)

	require.Error(t, m.LoginUser(context.Background(), "a@b.com", "password1"))
	require.Equal(t, "Too many attempts. Please wait a moment and try again.", store.State().Err)
}

func TestLogoutUser_TreatsMissingSessionAsSuccess(t *testing.T) {
	a := &fakeAuth{LogoutErr: &provider.Error{Message: "Unauthorized", Code: 401, Type: provider.TypeUserUnauthorized}}
	m, store, _ := newManager(a, nil)
	store.Dispatch(state.Action{Op: state.OpLogin, User: &provider.Account{ID: "u1"}, Session: &provider.Session{ID: "s1"}})

	require.NoError(t, m.LogoutUser(context.Background()))

	s := store.State()
	require.Nil(t, s.User)
	require.Nil(t, s.Session)
	require.False(t, s.AuthStatus)
	require.Empty(t, s.Err)
}

func TestFetchCurrentUser_Rejection_ReadsAsLoggedOut(t *testing.T) {
	a := &fakeAuth{UserErr: &provider.Error{Message: "Unauthorized", Code: 401, Type: provider.TypeUserUnauthorized}}
	m, store, _ := newManager(a, nil)
	store.Dispatch(state.Action{Op: state.OpLogin, User: &provider.Account{ID: "u1"}, Session: &provider.Session{ID: "s1"}})

	require.Error(t, m.FetchCurrentUser(context.Background()))

	s := store.State()
	require.Nil(t, s.User)
	require.False(t, s.AuthStatus)
	require.False(t, s.IsLoadingInitial)
	require.NotEmpty(t, s.Err)
}

func TestSignupUser_EmailTakenMessage(t *testing.T) {
	a := &fakeAuth{SignUpErr: &provider.Error{Message: "A user with the same email already exists", Code: 409, Type: provider.TypeUserAlreadyExists}}
	m, store, _ := newManager(a, nil)

	require.Error(t, m.SignupUser(context.Background(), "a@b.com", "password1", "alice", "Alice"))
	require.Equal(t, "User with this email already exists", store.State().Err)
}

func TestSignupUser_Fulfilled_DoesNotAuthenticate(t *testing.T) {
	a := &fakeAuth{}
	m, store, _ := newManager(a, nil)

	require.NoError(t, m.SignupUser(context.Background(), "a@b.com", "password1", "alice", "Alice"))
	s := store.State()
	require.False(t, s.AuthStatus)
	require.Nil(t, s.User)
	require.Empty(t, s.Err)
}

func TestPending_ClearsPreviousError(t *testing.T) {
	a := &fakeAuth{}
	m, store, _ := newManager(a, nil)
	store.SetError("stale failure")

	var pendingErr *string
	unsub := store.Subscribe(func(s state.AuthState) {
		if pendingErr == nil && s.IsLoading {
			e := s.Err
			pendingErr = &e
		}
	})
	defer unsub()

	require.NoError(t, m.RequestPasswordReset(context.Background(), "a@b.com", ""))
	require.NotNil(t, pendingErr)
	require.Empty(t, *pendingErr)
}

func TestRequestPasswordReset_RateLimited(t *testing.T) {
	a := &fakeAuth{RequestResetErr: &provider.Error{Message: "Rate limit exceeded", Code: 429, Type: provider.TypeRateLimitExceeded}}
	m, store, _ := newManager(a, nil)

	require.Error(t, m.RequestPasswordReset(context.Background(), "a@b.com", ""))
	require.Equal(t, "Too many attempts. Please wait a moment and try again.", store.State().Err)
}

func TestTempSessionFlow(t *testing.T) {
	a := &fakeAuth{}
	m, store, _ := newManager(a, nil)

	require.NoError(t, m.CreateTempSession(context.Background(), "a@b.com", "password1"))
	s := store.State()
	require.NotNil(t, s.Session)
	require.False(t, s.AuthStatus)

	require.NoError(t, m.RequestEmailVerification(context.Background(), ""))
	require.NoError(t, m.DeleteSession(context.Background()))
	require.Nil(t, store.State().Session)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func newTestCache(t *testing.T) *localdb.SessionCache {
	t.Helper()
	db, err := localdb.Open(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return localdb.NewSessionCache(db)
}

func TestBootstrap_RestoresCachedSession(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, &localdb.CachedSession{
		SessionID:    "s1",
		UserID:       "u1",
		Secret:       "cached-secret",
		JWT:          "fresh",
		JWTExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	a := &fakeAuth{}
	m, store, sessions := newManager(a, cache)

	require.NoError(t, m.Bootstrap(ctx))
	require.Equal(t, []string{"cached-secret"}, sessions.restored)

	s := store.State()
	require.True(t, s.AuthStatus)
	require.False(t, s.IsLoadingInitial)
}

func TestBootstrap_RefreshesStaleJWT(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, &localdb.CachedSession{
		SessionID: "s1",
		UserID:    "u1",
		Secret:    "cached-secret",
	}))

	exp := time.Now().Add(15 * time.Minute)
	a := &fakeAuth{JWTRet: signedToken(t, exp)}
	m, _, _ := newManager(a, cache)

	require.NoError(t, m.Bootstrap(ctx))
	require.Contains(t, a.Calls, "CreateJWT")

	rec, err := cache.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, a.JWTRet, rec.JWT)
	require.False(t, rec.JWTStale(time.Now()))
}

func TestBootstrap_EmptyCacheStillConfirmsLoggedOut(t *testing.T) {
	cache := newTestCache(t)
	a := &fakeAuth{UserErr: &provider.Error{Message: "Unauthorized", Code: 401, Type: provider.TypeUserUnauthorized}}
	m, store, sessions := newManager(a, cache)

	require.Error(t, m.Bootstrap(context.Background()))
	require.Empty(t, sessions.restored)

	s := store.State()
	require.False(t, s.AuthStatus)
	require.False(t, s.IsLoadingInitial)
}

func TestLoginUser_PersistsSessionToCache(t *testing.T) {
	cache := newTestCache(t)
	exp := time.Now().Add(15 * time.Minute)
	a := &fakeAuth{JWTRet: signedToken(t, exp)}
	m, _, _ := newManager(a, cache)

	require.NoError(t, m.LoginUser(context.Background(), "a@b.com", "password1"))

	rec, err := cache.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "s1", rec.SessionID)
	require.Equal(t, "secret", rec.Secret)
	require.Equal(t, a.JWTRet, rec.JWT)
}

func TestLogoutUser_ClearsCache(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Save(ctx, &localdb.CachedSession{SessionID: "s1", UserID: "u1", Secret: "x"}))

	a := &fakeAuth{}
	m, _, _ := newManager(a, cache)

	require.NoError(t, m.LogoutUser(ctx))
	rec, err := cache.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)
}
