package state

import "sync"

// Store owns one AuthState and serializes every mutation through Dispatch.
// The browser original relied on the event loop for this; here a mutex plays
// that role, so dispatches may come from any goroutine.
type Store struct {
	mu    sync.Mutex
	state AuthState
	subs  map[int]func(AuthState)
	next  int
}

// NewStore returns a store holding the zero AuthState: logged out, no error,
// nothing loading.
func NewStore() *Store {
	return &Store{subs: make(map[int]func(AuthState))}
}

// State returns the current snapshot.
func (s *Store) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces the action into the state and notifies subscribers with
// the resulting snapshot. Subscribers run outside the lock; a subscriber may
// dispatch further actions without deadlocking.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state
	subs := make([]func(AuthState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Subscribe registers fn to run after every dispatch and returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func(AuthState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// SetError stores a user-facing error message; pass "" to dismiss it.
func (s *Store) SetError(msg string) {
	s.Dispatch(Action{Op: OpSetError, Err: msg})
}
