package service

import "sync"

// userLocks serializes mutations per user id. The profile store has no
// compare-and-swap, so two in-flight submissions for the same user would
// race on read-modify-write; funneling them through one mutex per id keeps
// the streak and daily-selection writes ordered within this process.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
