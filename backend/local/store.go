package local

import (
	"errors"
	"sync"
)

// ErrRejected is returned by byte stores that drop a write under pressure.
var ErrRejected = errors.New("local backend: write rejected by store")

// ByteStore is the raw byte map underneath Local. It needs no atomicity beyond
// single calls; Local serializes read-modify-write sequences itself.
type ByteStore interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	Get(key string) ([]byte, bool, error)
	// Set stores value. Lossy stores return ErrRejected when they refuse it.
	Set(key string, value []byte) error
	// Del removes key. Local uses it to drop entries that fail to decode.
	Del(key string) error
	// Reset drops every key.
	Reset() error
	Close() error
}

// MapStore is an unbounded in-process ByteStore. It never evicts.
type MapStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ ByteStore = (*MapStore)(nil)

func NewMapStore() *MapStore {
	return &MapStore{m: make(map[string][]byte)}
}

func (s *MapStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	return v, ok, nil
}

func (s *MapStore) Set(key string, value []byte) error {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
	return nil
}

func (s *MapStore) Del(key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

func (s *MapStore) Reset() error {
	s.mu.Lock()
	s.m = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

func (s *MapStore) Close() error { return nil }
