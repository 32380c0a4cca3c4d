// Package state implements the auth state store: an explicit state-machine
// object owning the AuthState struct, mutated only through Store.Dispatch.
// Reducers are pure functions keyed by operation and phase, so every
// transition is unit-testable without a store instance.
package state

import "github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"

// AuthState is the client-side auth snapshot UI bindings render from.
//
// Invariant: AuthStatus == true implies User != nil.
// Err is cleared at the start of every operation and on SetError("").
type AuthState struct {
	User             *provider.Account
	Session          *provider.Session
	AuthStatus       bool
	IsLoading        bool
	IsLoadingInitial bool
	Err              string
}

// Op names one store operation. Async operations go through the
// pending/fulfilled/rejected lifecycle; sync operations apply immediately
// and ignore Phase.
type Op string

const (
	// Async operations.
	OpLoginUser                 Op = "loginUser"
	OpLogoutUser                Op = "logoutUser"
	OpFetchCurrentUser          Op = "fetchCurrentUser"
	OpSignupUser                Op = "signupUser"
	OpCreateTempSession         Op = "createTempSession"
	OpDeleteSession             Op = "deleteSession"
	OpRequestPasswordReset      Op = "requestPasswordReset"
	OpCompletePasswordReset     Op = "completePasswordReset"
	OpRequestEmailVerification  Op = "requestEmailVerification"
	OpCompleteEmailVerification Op = "completeEmailVerification"

	// Sync operations.
	OpLogin         Op = "login"
	OpLogout        Op = "logout"
	OpSetUser       Op = "setUser"
	OpSetAuthStatus Op = "setAuthStatus"
	OpSetError      Op = "setError"
)

// Phase is the lifecycle stage of an async operation.
type Phase int

const (
	Pending Phase = iota
	Fulfilled
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Action is one dispatched transition. Payload fields are read per
// operation: User/Session on fulfillments and sync setters, Err on
// rejections and OpSetError, Status on OpSetAuthStatus.
type Action struct {
	Op      Op
	Phase   Phase
	User    *provider.Account
	Session *provider.Session
	Err     string
	Status  bool
}

// PendingAction builds the pending action for op.
func PendingAction(op Op) Action {
	return Action{Op: op, Phase: Pending}
}

// FulfilledAction builds the fulfilled action for op with its payload.
func FulfilledAction(op Op, user *provider.Account, session *provider.Session) Action {
	return Action{Op: op, Phase: Fulfilled, User: user, Session: session}
}

// RejectedAction builds the rejected action for op with the failure reason.
func RejectedAction(op Op, reason string) Action {
	return Action{Op: op, Phase: Rejected, Err: reason}
}
