package pipeline

import "sync"

// KeyedLock serializes work per arbitrary string key so concurrent report
// workers never race on the same demand row.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedLock() *KeyedLock {
	return &KeyedLock{locks: map[string]*sync.Mutex{}}
}

// Do runs fn while holding the lock for key.
func (l *KeyedLock) Do(key string, fn func() error) error {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn()
}
