// Package auth holds the local validation layer of the auth workflow: the
// typed AuthError taxonomy and the credential validator that runs before any
// network call.
package auth

import "errors"

// Kind is the machine-readable classification of a local auth error. UIs
// branch on Kind (or the paired numeric code) rather than on message text.
type Kind string

const (
	KindInitFailed            Kind = "init_failed"
	KindMissingFields         Kind = "missing_fields"
	KindInvalidType           Kind = "invalid_type"
	KindInvalidEmail          Kind = "invalid_email"
	KindInvalidUsernameLength Kind = "invalid_username_length"
	KindInvalidUsernameFormat Kind = "invalid_username_format"
	KindInvalidNameLength     Kind = "invalid_name_length"
	KindInvalidPasswordLength Kind = "invalid_password_length"
	KindUsernameAlreadyExists Kind = "username_already_exists"
	KindInvalidPreferences    Kind = "invalid_preferences"
	KindInvalidTheme          Kind = "invalid_theme"
	KindInvalidFontSize       Kind = "invalid_font_size"
	KindServerSideRequired    Kind = "server_side_required"
)

// kindCodes assigns each kind its stable numeric code. Codes are part of the
// public contract and must never be renumbered.
var kindCodes = map[Kind]int{
	KindInitFailed:            1000,
	KindMissingFields:         1001,
	KindInvalidType:           1002,
	KindInvalidEmail:          1003,
	KindInvalidUsernameLength: 1004,
	KindInvalidUsernameFormat: 1005,
	KindInvalidNameLength:     1006,
	KindInvalidPasswordLength: 1007,
	KindUsernameAlreadyExists: 1008,
	KindInvalidPreferences:    1009,
	KindInvalidTheme:          1010,
	KindInvalidFontSize:       1011,
	KindServerSideRequired:    1012,
}

// Error is a local validation failure raised before (or instead of) a
// provider call. It is returned as a value, never panicked.
type Error struct {
	Message string
	Code    int
	Kind    Kind
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error of the given kind with its stable code.
func NewError(kind Kind, message string) *Error {
	return &Error{Message: message, Code: kindCodes[kind], Kind: kind}
}

// IsKind reports whether err is a local auth Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
