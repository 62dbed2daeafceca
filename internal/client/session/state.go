// Package session holds the process-wide authentication state: the working
// copy of the access token and the current user's profile.
//
// The state is observable: subscribers are notified with a consistent snapshot
// after every mutation. The invariant "user present implies token present"
// holds for every snapshot a subscriber or reader can see.
package session

import (
	"sync"

	"github.com/vkuzmenko/profcli/internal/client/models"
	"github.com/vkuzmenko/profcli/internal/common"
)

// Snapshot is an immutable view of the session at one point in time.
type Snapshot struct {
	Token         string
	User          *models.User
	Authenticated bool
}

// State is the single mutable session record. All writes go through the
// auth service and the request authorizer; the UI only reads and subscribes.
type State struct {
	mu     sync.RWMutex
	token  string
	user   *models.User
	subs   map[int]func(Snapshot)
	nextID int
}

func New() *State {
	return &State{subs: make(map[int]func(Snapshot))}
}

// Read returns a consistent snapshot of the current session.
func (s *State) Read() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Set replaces token and user in one step. No reader or subscriber can
// observe a state where only one of the two has changed.
func (s *State) Set(token string, user *models.User) {
	s.mu.Lock()
	s.token = token
	s.user = cloneUser(user)
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
}

// SetUser replaces only the user field. It requires an existing token and
// fails with common.ErrInvariantViolation otherwise; the error signals a
// programming bug, not a user-facing condition.
func (s *State) SetUser(user *models.User) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return common.ErrInvariantViolation
	}
	s.user = cloneUser(user)
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
	return nil
}

// Clear resets both token and user in one step.
func (s *State) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function cancels the subscription.
func (s *State) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Token:         s.token,
		User:          cloneUser(s.user),
		Authenticated: s.token != "",
	}
}

func (s *State) subscribersLocked() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

// notify runs outside the state lock so subscribers may read the state again.
func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
