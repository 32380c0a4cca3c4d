package state

// Reduce applies one action to a state snapshot and returns the next
// snapshot. It never mutates s in place.
func Reduce(s AuthState, a Action) AuthState {
	switch a.Op {
	case OpLogin:
		s.User = a.User
		s.Session = a.Session
		s.AuthStatus = a.User != nil
		return s
	case OpLogout:
		s.User = nil
		s.Session = nil
		s.AuthStatus = false
		return s
	case OpSetUser:
		s.User = a.User
		if a.User == nil {
			s.AuthStatus = false
		}
		return s
	case OpSetAuthStatus:
		// AuthStatus cannot be raised without a user; the invariant wins
		// over the caller.
		s.AuthStatus = a.Status && s.User != nil
		return s
	case OpSetError:
		s.Err = a.Err
		return s
	}

	switch a.Phase {
	case Pending:
		return reducePending(s, a)
	case Fulfilled:
		return reduceFulfilled(s, a)
	case Rejected:
		return reduceRejected(s, a)
	}
	return s
}

func reducePending(s AuthState, a Action) AuthState {
	s.Err = ""
	if a.Op == OpFetchCurrentUser {
		s.IsLoadingInitial = true
	} else {
		s.IsLoading = true
	}
	return s
}

func reduceFulfilled(s AuthState, a Action) AuthState {
	s.IsLoading = false
	s.IsLoadingInitial = false

	switch a.Op {
	case OpLoginUser:
		s.User = a.User
		s.Session = a.Session
		s.AuthStatus = a.User != nil
	case OpFetchCurrentUser:
		s.User = a.User
		s.AuthStatus = a.User != nil
	case OpLogoutUser:
		s.User = nil
		s.Session = nil
		s.AuthStatus = false
	case OpCreateTempSession:
		s.Session = a.Session
	case OpDeleteSession:
		s.Session = nil
	case OpSignupUser,
		OpRequestPasswordReset, OpCompletePasswordReset,
		OpRequestEmailVerification, OpCompleteEmailVerification:
		// Outcome lives outside the auth snapshot; only the loading flag
		// changes.
	}
	return s
}

func reduceRejected(s AuthState, a Action) AuthState {
	s.IsLoading = false
	s.IsLoadingInitial = false
	s.Err = a.Err

	// A session that cannot be confirmed reads as "logged out". Every other
	// rejection leaves the prior user/session untouched.
	if a.Op == OpFetchCurrentUser {
		s.User = nil
		s.AuthStatus = false
	}
	return s
}
