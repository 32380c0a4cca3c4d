package auth

import "regexp"

// Shape limits for credential fields. Password length is a separate rule
// checked by the operations that actually set a password; ValidateCredentials
// itself never inspects password content (see the note on that function).
const (
	UsernameMinLen = 3
	UsernameMaxLen = 30
	NameMinLen     = 1
	NameMaxLen     = 127
	PasswordMinLen = 8
	PasswordMaxLen = 256
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[\w]+$`)
)

// ValidateCredentials checks the shape of credential fields before any
// network call and returns the first violated rule as an *Error.
//
// Email and password are required; username and name are validated only when
// non-empty. Callers are expected to trim and lower-case the email before
// calling. Password length/complexity is deliberately not enforced here:
// length is the caller's rule, complexity lives in the UI form layer only.
func ValidateCredentials(email, password, username, name string) error {
	if email == "" || password == "" {
		return NewError(KindMissingFields, "Email and password are required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if username != "" {
		if err := ValidateUsername(username); err != nil {
			return err
		}
	}
	if name != "" {
		if len(name) < NameMinLen || len(name) > NameMaxLen {
			return NewError(KindInvalidNameLength, "Name must be between 1 and 127 characters")
		}
	}
	return nil
}

// ValidateEmail checks the email against the shared shape regex.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return NewError(KindInvalidEmail, "Invalid email address")
	}
	return nil
}

// ValidateUsername checks username length and charset.
func ValidateUsername(username string) error {
	if len(username) < UsernameMinLen || len(username) > UsernameMaxLen {
		return NewError(KindInvalidUsernameLength, "Username must be between 3 and 30 characters")
	}
	if !usernameRe.MatchString(username) {
		return NewError(KindInvalidUsernameFormat, "Username may only contain letters, numbers and underscores")
	}
	return nil
}

// ValidatePasswordLength enforces the [8,256] password length rule used by
// signup, password reset and password change. Login deliberately skips it.
func ValidatePasswordLength(password string) error {
	if len(password) < PasswordMinLen || len(password) > PasswordMaxLen {
		return NewError(KindInvalidPasswordLength, "Password must be between 8 and 256 characters")
	}
	return nil
}
