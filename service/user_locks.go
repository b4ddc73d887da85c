package service

import "sync"

// userLocks hands out one mutex per user so settlement for a single user is
// strictly serialized without a lock shared across unrelated users.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *userLocks) get(telegramID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[telegramID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[telegramID] = lock
	}
	return lock
}
