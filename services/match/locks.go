package match

import "sync"

// matchLocks serializes mutating operations per match. Operations on
// different matches share no state and proceed concurrently; two
// operations on the same match never interleave their reads and writes.
type matchLocks struct {
	mu    sync.Mutex
	locks map[uint]*matchLock
}

type matchLock struct {
	mu   sync.Mutex
	refs int
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[uint]*matchLock)}
}

// Lock blocks until the match's lock is held and returns the release
// function. Entries are dropped again once nobody waits on them.
func (l *matchLocks) Lock(matchID uint) func() {
	l.mu.Lock()
	ml, ok := l.locks[matchID]
	if !ok {
		ml = &matchLock{}
		l.locks[matchID] = ml
	}
	ml.refs++
	l.mu.Unlock()

	ml.mu.Lock()

	return func() {
		ml.mu.Unlock()
		l.mu.Lock()
		ml.refs--
		if ml.refs == 0 {
			delete(l.locks, matchID)
		}
		l.mu.Unlock()
	}
}
