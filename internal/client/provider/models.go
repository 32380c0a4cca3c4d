package provider

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Account is the provider's view of a user. The client caches one Account in
// the auth state store for the duration of a session.
type Account struct {
	ID            string      `json:"$id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	EmailVerified bool        `json:"emailVerification"`
	Prefs         Preferences `json:"prefs"`
	CreatedAt     time.Time   `json:"$createdAt"`
}

// Preferences is the per-account preference blob stored with the provider.
// Username is duplicated here from the side-table so the editor can render
// it without an extra lookup.
type Preferences struct {
	Username string `json:"username,omitempty"`
	Theme    string `json:"theme,omitempty"`
	FontSize int    `json:"fontSize,omitempty"`
}

// Session represents one authenticated browser session. Secret is only
// populated on the CreateEmailSession response and is what the adapter (and
// the local cache) retains; it never round-trips on reads.
type Session struct {
	ID        string    `json:"$id"`
	UserID    string    `json:"userId"`
	Secret    string    `json:"secret,omitempty"`
	CreatedAt time.Time `json:"$createdAt"`
	ExpiresAt time.Time `json:"expire"`
}

// RawDocument is an undecoded document body, including the provider's
// $-prefixed metadata fields.
type RawDocument = json.RawMessage

// DocumentList is a page of documents from a collection listing.
type DocumentList struct {
	Total     int64         `json:"total"`
	Documents []RawDocument `json:"documents"`
}

// NewUniqueID returns a client-generated document/account id. The provider
// accepts caller-chosen ids; the client always supplies random ones.
func NewUniqueID() string {
	return uuid.NewString()
}
