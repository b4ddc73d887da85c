package session

import (
	"sync"
	"testing"

	"taixiu/models"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetAbsentIsIdle(t *testing.T) {
	store := NewStore()

	state := store.Get(12345)
	assert.Equal(t, Idle, state)
}

func TestStore_SetGetClear(t *testing.T) {
	store := NewStore()

	store.Set(1, State{Kind: StateAwaitingCustomBet, Choice: models.ChoiceTai})
	state := store.Get(1)
	assert.Equal(t, StateAwaitingCustomBet, state.Kind)
	assert.Equal(t, models.ChoiceTai, state.Choice)

	store.Clear(1)
	assert.Equal(t, Idle, store.Get(1))

	// Cleared is indistinguishable from never-seen
	assert.Equal(t, store.Get(99), store.Get(1))
}

func TestStore_StatesAreIndependentPerUser(t *testing.T) {
	store := NewStore()

	store.Set(1, State{Kind: StateAdminAwaitingTargetUser})
	store.Set(2, State{Kind: StateAdminAwaitingAmount, TargetID: 42})

	assert.Equal(t, StateAdminAwaitingTargetUser, store.Get(1).Kind)
	assert.Equal(t, StateAdminAwaitingAmount, store.Get(2).Kind)
	assert.Equal(t, int64(42), store.Get(2).TargetID)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			store.Set(userID, State{Kind: StateAwaitingCustomBet, Choice: models.ChoiceXiu})
			_ = store.Get(userID)
			store.Clear(userID)
		}(int64(i % 10))
	}
	wg.Wait()
}

// A duplicated message must not be processed twice against the same state:
// only one of N concurrent check-then-clear sequences may observe the armed
// state.
func TestStore_WithLockSerializesSameUser(t *testing.T) {
	store := NewStore()
	store.Set(7, State{Kind: StateAwaitingCustomBet, Choice: models.ChoiceTai})

	var processed int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.WithLock(7, func() {
				if store.Get(7).Kind == StateAwaitingCustomBet {
					store.Clear(7)
					processed++
				}
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, processed)
	assert.Equal(t, Idle, store.Get(7))
}

func TestStore_WithLockDoesNotBlockOtherUsers(t *testing.T) {
	store := NewStore()

	release := make(chan struct{})
	holding := make(chan struct{})
	go store.WithLock(1, func() {
		close(holding)
		<-release
	})

	<-holding

	// User 2 proceeds while user 1's lock is held
	done := make(chan struct{})
	go store.WithLock(2, func() { close(done) })
	<-done

	close(release)
}
