// Package session tracks where each user currently is in a multi-step
// interaction: idle, waiting to type a custom bet amount, or partway through
// the admin recharge flow. State lives in memory only; the durable ledger is
// never derived from it.
package session

import (
	"sync"

	"taixiu/models"
)

// StateKind identifies which input the bot expects next from a user.
type StateKind string

const (
	StateIdle                    StateKind = "idle"
	StateAwaitingCustomBet       StateKind = "awaiting_custom_bet"
	StateAdminAwaitingTargetUser StateKind = "admin_awaiting_target_user"
	StateAdminAwaitingAmount     StateKind = "admin_awaiting_amount"
)

// State is the per-user session value. Exactly one exists per user at any
// instant; a user the store has never seen is Idle, indistinguishable from a
// user whose flow was cleared.
type State struct {
	Kind StateKind

	// Choice carries the chosen side while waiting for a custom bet amount.
	Choice models.Choice

	// TargetID carries the recharge target while waiting for an amount.
	TargetID int64
}

// Idle is the zero state every user starts from and returns to.
var Idle = State{Kind: StateIdle}

// Store is a concurrent keyed session store. Reads and writes for different
// users never block each other; WithLock serializes the check-then-transition
// sequences of a single user.
type Store struct {
	mu     sync.RWMutex
	states map[int64]State

	lockMu sync.Mutex
	locks  map[int64]*sync.Mutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		states: make(map[int64]State),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// Get returns the current state for a user. Absence is not an error; an
// unknown user is Idle.
func (s *Store) Get(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.states[userID]; ok {
		return state
	}
	return Idle
}

// Set replaces the state for a user.
func (s *Store) Set(userID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
}

// Clear returns a user to Idle. Equivalent to Set(userID, Idle).
func (s *Store) Clear(userID int64) {
	s.Set(userID, Idle)
}

// WithLock runs fn while holding an exclusive lock for userID. Handlers wrap
// their read-state/decide/transition sequence in WithLock so a duplicated
// message cannot be processed twice against the same state. Locks are
// per-user; unrelated users proceed concurrently.
func (s *Store) WithLock(userID int64, fn func()) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	fn()
}

func (s *Store) userLock(userID int64) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}
