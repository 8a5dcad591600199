// Package locks provides a keyed mutex registry giving each order a single
// logical writer: all mutating operations for one key serialize while
// operations on different keys proceed fully in parallel.
package locks

import "sync"

// KeyedMutex hands out one mutex per string key. Mutexes are created lazily
// and kept for the registry's lifetime; the key space (order ids, rider ids)
// is bounded by the working set, so no eviction is needed.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty registry.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock acquires the mutex for key, blocking until it is free.
// Returns an unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	m := k.get(key)
	m.Lock()
	return m.Unlock
}

// LockPair acquires both keys in lexicographic order, so two operations that
// touch the same pair of aggregates (a delivery's order and a rider) can never
// deadlock against each other. Equal keys acquire a single lock.
// Returns an unlock function releasing both in reverse order.
func (k *KeyedMutex) LockPair(a, b string) func() {
	if a == b {
		return k.Lock(a)
	}
	if b < a {
		a, b = b, a
	}

	first := k.get(a)
	second := k.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
