package conflict

import (
	"sort"
	"strconv"
	"sync"
)

// LockTable serialises check-then-register sequences per occupancy key. Two
// concurrent proposals for the same room or teacher on the same day in the
// same scope must not both pass the conflict check, so the lock is held from
// the conflict query until the transaction outcome is decided.
type LockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLockTable builds an empty lock table.
func NewLockTable() *LockTable {
	return &LockTable{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks every given key and returns a release function. Keys are
// deduplicated and locked in sorted order so overlapping acquisitions cannot
// deadlock.
func (t *LockTable) Acquire(keys ...Key) func() {
	names := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		name := lockName(key)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	held := make([]*sync.Mutex, 0, len(names))
	for _, name := range names {
		mu := t.lockFor(name)
		mu.Lock()
		held = append(held, mu)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (t *LockTable) lockFor(name string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	if mu, ok := t.locks[name]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	t.locks[name] = mu
	return mu
}

func lockName(key Key) string {
	return key.Scope.String() + "|" + string(key.Kind) + "|" + key.ResourceID + "|" + strconv.Itoa(key.Day)
}
