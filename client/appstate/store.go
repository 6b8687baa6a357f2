package appstate

import (
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"github.com/rakesh3649/Fitness/client/devicestore"
)

// Listener is called after every dispatch with the new state and the
// action that produced it.
type Listener func(State, Action)

// Store serializes dispatches. Listeners run on the dispatching goroutine,
// after the state has been replaced, and must not dispatch themselves.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
}

func NewStore(initial State) *Store {
	return &Store{state: initial.clone(), listeners: make(map[int]Listener)}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state.clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot, a)
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Persist returns a Listener that mirrors the session and the cart into
// storage. Write failures are logged; the in-memory state stays
// authoritative.
func Persist(storage devicestore.Storage, logger *slog.Logger) Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return func(s State, a Action) {
		var err error
		switch a.(type) {
		case LoggedIn:
			err = saveSession(storage, s.Session)
		case LoggedOut:
			err = clearSession(storage)
		case CartItemAdded, CartItemRemoved, CartQuantitySet, CartReset:
			err = devicestore.SetJSON(storage, devicestore.KeyCart, s.Cart.Lines)
		}
		if err != nil {
			logger.Warn("persisting client state failed", "error", err)
		}
	}
}

func saveSession(storage devicestore.Storage, sess *Session) error {
	if sess == nil {
		return clearSession(storage)
	}
	if err := devicestore.SetJSON(storage, devicestore.KeyToken, sess.Token); err != nil {
		return err
	}
	return devicestore.SetJSON(storage, devicestore.KeyUser, sess.User)
}

func clearSession(storage devicestore.Storage) error {
	if err := storage.Remove(devicestore.KeyToken); err != nil {
		return err
	}
	return storage.Remove(devicestore.KeyUser)
}

// Restore rebuilds the state saved by Persist. A session needs both the
// token and the user; a partial one is ignored.
func Restore(storage devicestore.Storage) (State, error) {
	var s State

	var token string
	err := devicestore.GetJSON(storage, devicestore.KeyToken, &token)
	switch {
	case errors.Is(err, devicestore.ErrNotFound):
	case err != nil:
		return State{}, err
	default:
		var user Session
		err := devicestore.GetJSON(storage, devicestore.KeyUser, &user.User)
		if err != nil && !errors.Is(err, devicestore.ErrNotFound) {
			return State{}, err
		}
		if err == nil && token != "" {
			user.Token = token
			s.Session = &user
		}
	}

	var lines []CartLine
	err = devicestore.GetJSON(storage, devicestore.KeyCart, &lines)
	if err != nil && !errors.Is(err, devicestore.ErrNotFound) {
		return State{}, err
	}
	if len(lines) > 0 {
		s.Cart.Lines = lines
	}
	return s, nil
}
