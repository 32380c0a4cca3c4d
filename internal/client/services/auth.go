package services

import (
	"context"
	"strings"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/auth"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/logging"
)

// Preference bounds accepted by UpdatePreferences.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	FontSizeMin = 8
	FontSizeMax = 64

	defaultTheme    = ThemeDark
	defaultFontSize = 14
)

// AuthService is the single point of contact with the identity provider.
// It validates inputs locally, composes multi-call workflows, and passes
// provider errors through un-normalized; local failures come back as
// *auth.Error.
//
// Contract highlights:
//   - SignUp runs the full chain: uniqueness check → account create → temp
//     session → verification request → default prefs → session teardown →
//     username record. A failure at any step aborts the rest; there is no
//     compensating rollback (accepted risk: the account stays half set up).
//   - Login validates presence and email shape only. Password length is a
//     signup/reset rule; a short password still reaches the provider.
//   - CheckSession never returns an error; any failure reads as "no session".
//   - DeleteAccount is a deliberate stub: it clears client-held state and
//     then fails with server_side_required.
type AuthService interface {
	SignUp(ctx context.Context, email, password, username, name string) (*provider.Account, error)
	Login(ctx context.Context, email, password string) (*provider.Session, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*provider.Account, error)

	RequestPasswordReset(ctx context.Context, email, resetURL string) error
	CompletePasswordReset(ctx context.Context, userID, secret, newPassword string) error
	RequestEmailVerification(ctx context.Context, verifyURL string) error
	CompleteEmailVerification(ctx context.Context, userID, secret string) error
	CheckEmailVerification(ctx context.Context) (bool, error)

	UpdateEmail(ctx context.Context, newEmail, password string) (*provider.Account, error)
	UpdateUsername(ctx context.Context, userID, username string) error
	UpdatePassword(ctx context.Context, newPassword, oldPassword string) error
	UpdatePreferences(ctx context.Context, prefs *provider.Preferences) (*provider.Account, error)
	GetPreferences(ctx context.Context) (*provider.Preferences, error)

	CheckSession(ctx context.Context) bool
	CreateJWT(ctx context.Context) (string, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type authService struct {
	provider  provider.IdentityProvider
	usernames *UsernameDirectory
	verifyURL string
	resetURL  string
	log       logging.Logger
}

// NewAuthService constructs the gateway. verifyURL and resetURL are the
// application routes the provider embeds into verification and recovery
// emails.
func NewAuthService(p provider.IdentityProvider, usernames *UsernameDirectory, verifyURL, resetURL string, log logging.Logger) AuthService {
	return &authService{provider: p, usernames: usernames, verifyURL: verifyURL, resetURL: resetURL, log: log}
}

// normalizeEmail applies the pre-validation normalization every entry point
// performs: trim whitespace, lower-case.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates an account and everything that hangs off it. Step order is
// load-bearing: the verification request and the preference write need the
// temporary session, and the username record is only persisted once the
// account fully exists.
func (s *authService) SignUp(ctx context.Context, email, password, username, name string) (*provider.Account, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)

	if username == "" || name == "" {
		return nil, auth.NewError(auth.KindMissingFields, "Email, password, username and name are required")
	}
	if err := auth.ValidateCredentials(email, password, username, name); err != nil {
		return nil, err
	}
	if err := auth.ValidatePasswordLength(password); err != nil {
		return nil, err
	}

	// Best-effort uniqueness: two concurrent signups can both pass this
	// check before either record lands.
	taken, err := s.usernames.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, auth.NewError(auth.KindUsernameAlreadyExists, "Username is already taken")
	}

	acct, err := s.provider.CreateAccount(ctx, provider.NewUniqueID(), email, password, name)
	if err != nil {
		return nil, err
	}

	if _, err := s.provider.CreateEmailSession(ctx, email, password); err != nil {
		return nil, err
	}
	if err := s.provider.CreateVerification(ctx, s.verifyURL); err != nil {
		return nil, err
	}
	prefs := provider.Preferences{Username: username, Theme: defaultTheme, FontSize: defaultFontSize}
	if _, err := s.provider.UpdatePrefs(ctx, prefs); err != nil {
		return nil, err
	}
	if err := s.provider.DeleteSession(ctx, provider.CurrentSession); err != nil {
		return nil, err
	}
	if err := s.usernames.Create(ctx, acct.ID, username); err != nil {
		return nil, err
	}

	return acct, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*provider.Session, error) {
	email = normalizeEmail(email)
	if err := auth.ValidateCredentials(email, password, "", ""); err != nil {
		return nil, err
	}
	return s.provider.CreateEmailSession(ctx, email, password)
}

// Logout destroys the current session. "Already logged out" (provider 401)
// is not special-cased here; the call site decides whether that counts as
// success.
func (s *authService) Logout(ctx context.Context) error {
	return s.provider.DeleteSession(ctx, provider.CurrentSession)
}

func (s *authService) GetCurrentUser(ctx context.Context) (*provider.Account, error) {
	return s.provider.GetAccount(ctx)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email, resetURL string) error {
	email = normalizeEmail(email)
	if resetURL == "" {
		resetURL = s.resetURL
	}
	if email == "" || resetURL == "" {
		return auth.NewError(auth.KindMissingFields, "Email and reset URL are required")
	}
	if err := auth.ValidateEmail(email); err != nil {
		return err
	}
	return s.provider.CreateRecovery(ctx, email, resetURL)
}

func (s *authService) CompletePasswordReset(ctx context.Context, userID, secret, newPassword string) error {
	if userID == "" || secret == "" || newPassword == "" {
		return auth.NewError(auth.KindMissingFields, "User id, secret and new password are required")
	}
	if err := auth.ValidatePasswordLength(newPassword); err != nil {
		return err
	}
	return s.provider.UpdateRecovery(ctx, userID, secret, newPassword)
}

func (s *authService) RequestEmailVerification(ctx context.Context, verifyURL string) error {
	if verifyURL == "" {
		verifyURL = s.verifyURL
	}
	if verifyURL == "" {
		return auth.NewError(auth.KindMissingFields, "Verification URL is required")
	}
	return s.provider.CreateVerification(ctx, verifyURL)
}

func (s *authService) CompleteEmailVerification(ctx context.Context, userID, secret string) error {
	if userID == "" || secret == "" {
		return auth.NewError(auth.KindMissingFields, "User id and secret are required")
	}
	return s.provider.UpdateVerification(ctx, userID, secret)
}

func (s *authService) CheckEmailVerification(ctx context.Context) (bool, error) {
	acct, err := s.provider.GetAccount(ctx)
	if err != nil {
		return false, err
	}
	return acct.EmailVerified, nil
}

func (s *authService) UpdateEmail(ctx context.Context, newEmail, password string) (*provider.Account, error) {
	newEmail = normalizeEmail(newEmail)
	if err := auth.ValidateCredentials(newEmail, password, "", ""); err != nil {
		return nil, err
	}
	return s.provider.UpdateEmail(ctx, newEmail, password)
}

// UpdateUsername changes the side-table record first, then mirrors the new
// username into the account preferences.
func (s *authService) UpdateUsername(ctx context.Context, userID, username string) error {
	username = strings.TrimSpace(username)
	if userID == "" || username == "" {
		return auth.NewError(auth.KindMissingFields, "User id and username are required")
	}
	if err := auth.ValidateUsername(username); err != nil {
		return err
	}

	taken, err := s.usernames.Exists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return auth.NewError(auth.KindUsernameAlreadyExists, "Username is already taken")
	}

	if err := s.usernames.Update(ctx, userID, username); err != nil {
		return err
	}

	prefs, err := s.provider.GetPrefs(ctx)
	if err != nil {
		return err
	}
	prefs.Username = username
	_, err = s.provider.UpdatePrefs(ctx, *prefs)
	return err
}

func (s *authService) UpdatePassword(ctx context.Context, newPassword, oldPassword string) error {
	if newPassword == "" || oldPassword == "" {
		return auth.NewError(auth.KindMissingFields, "Current and new password are required")
	}
	if err := auth.ValidatePasswordLength(newPassword); err != nil {
		return err
	}
	_, err := s.provider.UpdatePassword(ctx, newPassword, oldPassword)
	return err
}

func (s *authService) UpdatePreferences(ctx context.Context, prefs *provider.Preferences) (*provider.Account, error) {
	if prefs == nil {
		return nil, auth.NewError(auth.KindInvalidPreferences, "Preferences are required")
	}
	if prefs.Theme != ThemeLight && prefs.Theme != ThemeDark {
		return nil, auth.NewError(auth.KindInvalidTheme, "Theme must be 'light' or 'dark'")
	}
	if prefs.FontSize < FontSizeMin || prefs.FontSize > FontSizeMax {
		return nil, auth.NewError(auth.KindInvalidFontSize, "Font size must be between 8 and 64")
	}
	return s.provider.UpdatePrefs(ctx, *prefs)
}

func (s *authService) GetPreferences(ctx context.Context) (*provider.Preferences, error) {
	return s.provider.GetPrefs(ctx)
}

// CheckSession converts any failure into false: an unreachable backend and a
// missing session both read as "not logged in".
func (s *authService) CheckSession(ctx context.Context) bool {
	_, err := s.provider.GetSession(ctx, provider.CurrentSession)
	return err == nil
}

func (s *authService) CreateJWT(ctx context.Context) (string, error) {
	return s.provider.CreateJWT(ctx)
}

// DeleteAccount removes everything the client can remove on its own — the
// username record and all sessions — and then reports that the account
// itself can only be deleted server-side.
func (s *authService) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return auth.NewError(auth.KindMissingFields, "User id is required")
	}
	if err := s.usernames.Delete(ctx, userID); err != nil {
		s.log.Warn(ctx, "delete account: username record cleanup failed", "error", err)
	}
	if err := s.provider.DeleteSessions(ctx); err != nil {
		s.log.Warn(ctx, "delete account: session teardown failed", "error", err)
	}
	return auth.NewError(auth.KindServerSideRequired, "Account deletion must be implemented server-side")
}
