// Package provider defines the contract with the external backend-as-a-service
// platform that owns accounts, sessions, recovery/verification tokens,
// preferences, and document collections. The rest of the client depends only
// on the interfaces declared here; the concrete REST adapter lives in
// appwrite.go and can be swapped for a test double.
package provider

import "context"

// IdentityProvider is the account/session surface of the backend.
//
// Session scope: after a successful CreateEmailSession the adapter retains
// the session secret and sends it with subsequent account calls, mirroring
// how the browser client rides on the provider's session cookie. Operations
// documented as acting on "the current session" use the special id
// CurrentSession.
type IdentityProvider interface {
	// CreateAccount registers a new account. userID is a client-generated
	// unique id (see NewUniqueID).
	CreateAccount(ctx context.Context, userID, email, password, name string) (*Account, error)

	// CreateEmailSession opens an email/password session and makes it the
	// adapter's current session.
	CreateEmailSession(ctx context.Context, email, password string) (*Session, error)

	// GetSession fetches a session by id; pass CurrentSession for the
	// session the adapter currently holds.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// DeleteSession destroys a session by id (CurrentSession for the one
	// the adapter holds) and drops the retained secret when it was current.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteSessions destroys every session of the authenticated account.
	DeleteSessions(ctx context.Context) error

	// GetAccount fetches the account behind the current session.
	GetAccount(ctx context.Context) (*Account, error)

	UpdateEmail(ctx context.Context, email, password string) (*Account, error)
	UpdatePassword(ctx context.Context, newPassword, oldPassword string) (*Account, error)

	UpdatePrefs(ctx context.Context, prefs Preferences) (*Account, error)
	GetPrefs(ctx context.Context) (*Preferences, error)

	// CreateRecovery emails a password-reset token pointing at redirectURL.
	CreateRecovery(ctx context.Context, email, redirectURL string) error

	// UpdateRecovery consumes a reset token and sets the new password.
	UpdateRecovery(ctx context.Context, userID, secret, newPassword string) error

	// CreateVerification emails a verification token pointing at redirectURL.
	// Requires an active session.
	CreateVerification(ctx context.Context, redirectURL string) error

	// UpdateVerification consumes a verification token, marking the email
	// address verified.
	UpdateVerification(ctx context.Context, userID, secret string) error

	// CreateJWT issues a short-lived token for the current session.
	CreateJWT(ctx context.Context) (string, error)

	// SetSession installs a previously obtained session secret, e.g. one
	// restored from the local cache on startup.
	SetSession(secret string)

	// ClearSession drops the retained session secret and JWT.
	ClearSession()
}

// CurrentSession addresses the session the adapter currently holds.
const CurrentSession = "current"

// DocumentStore is the document-collection surface of the backend. Documents
// are returned as raw JSON; callers decode into their own record types.
type DocumentStore interface {
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (RawDocument, error)
	GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (RawDocument, error)
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (*DocumentList, error)
	UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (RawDocument, error)
	DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error
}
