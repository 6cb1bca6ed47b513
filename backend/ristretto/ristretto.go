// Package ristretto provides a ristretto-backed local.ByteStore.
//
// Ristretto admits writes probabilistically and evicts by cost, so it is a lossy
// store: refused writes surface as local.ErrRejected and evicted keys read as
// missing. Each entry costs its byte length.
package ristretto

import (
	"errors"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/replaycache/backend/local"
)

type Store struct {
	c *rc.Cache
}

var _ local.ByteStore = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // total bytes
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

// NewBackend is shorthand for local.New over a fresh ristretto store.
func NewBackend(cfg Config) (*local.Local, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return local.New(s), nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		s.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set waits for the write buffer so the value is visible to the next Get.
func (s *Store) Set(key string, value []byte) error {
	if !s.c.Set(key, value, int64(len(value))) {
		return local.ErrRejected
	}
	s.c.Wait()
	return nil
}

func (s *Store) Del(key string) error {
	s.c.Del(key)
	return nil
}

func (s *Store) Reset() error {
	s.c.Clear()
	return nil
}

func (s *Store) Close() error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes ristretto metrics when Config.Metrics is set.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
