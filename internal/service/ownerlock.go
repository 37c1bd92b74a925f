package service

import "sync"

// OwnerLocks serializes mutating operations per owner. Replace operations
// are delete-then-recreate sequences; the lock keeps a same-owner toggle or
// second replace from interleaving between the two halves. Operations for
// different owners proceed in parallel.
type OwnerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOwnerLocks() *OwnerLocks {
	return &OwnerLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for the given owner and returns the release func.
func (l *OwnerLocks) Lock(owner string) func() {
	l.mu.Lock()
	m, ok := l.locks[owner]
	if !ok {
		m = &sync.Mutex{}
		l.locks[owner] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
