package provider

import (
	"errors"
	"fmt"
)

// Error is a failure reported by the backend. Code carries the HTTP-level
// status from the response body (400, 401, 409, 429, ...) and Type the
// provider's symbolic classification (e.g. "user_already_exists").
//
// The gateway deliberately passes these through un-normalized; only specific
// call sites translate well-known codes into user-facing messages.
type Error struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider: %s (code=%d type=%s)", e.Message, e.Code, e.Type)
}

// Well-known provider error types the client branches on.
const (
	TypeUserAlreadyExists  = "user_already_exists"
	TypeUserInvalidCredent = "user_invalid_credentials"
	TypeRateLimitExceeded  = "general_rate_limit_exceeded"
	TypeUserUnauthorized   = "general_unauthorized_scope"
	TypeDocumentNotFound   = "document_not_found"
)

// IsCode reports whether err is a provider Error with the given code.
func IsCode(err error, code int) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == code
}

// IsType reports whether err is a provider Error with the given type.
func IsType(err error, errType string) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Type == errType
}
