package session

import (
	"errors"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/auth"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"
)

// User-facing messages for the provider errors the call sites special-case.
// Everything else surfaces as the raw error text.
const (
	msgRateLimited   = "Too many attempts. Please wait a moment and try again."
	msgBadCredential = "Invalid email or password"
	msgEmailTaken    = "User with this email already exists"
)

// userMessage is the default translation: local auth errors keep their
// message, rate limits get the friendly text, the rest passes through.
func userMessage(err error) string {
	var ae *auth.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	if provider.IsCode(err, 429) {
		return msgRateLimited
	}
	var pe *provider.Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}

// loginMessage additionally folds provider 400/401 into the generic
// bad-credentials text so the form never echoes which half was wrong.
func loginMessage(err error) string {
	if provider.IsCode(err, 400) || provider.IsCode(err, 401) {
		return msgBadCredential
	}
	return userMessage(err)
}

// signupMessage folds the provider's duplicate-account classification into
// the message the signup form links to the login flow.
func signupMessage(err error) string {
	if provider.IsType(err, provider.TypeUserAlreadyExists) {
		return msgEmailTaken
	}
	return userMessage(err)
}
