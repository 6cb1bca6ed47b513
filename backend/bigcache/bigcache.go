// Package bigcache provides a bigcache-backed local.ByteStore.
//
// bigcache expires entries after its LifeWindow; expired counters and history
// lists read as missing, the same as a Redis key evicted under maxmemory.
package bigcache

import (
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/replaycache/backend/local"
)

type Store struct {
	c *bc.BigCache
}

var _ local.ByteStore = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration // 0 => 24h
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Store, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = 24 * time.Hour
	}
	conf := bc.DefaultConfig(life)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

// NewBackend is shorthand for local.New over a fresh bigcache store.
func NewBackend(cfg Config) (*local.Local, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return local.New(s), nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	b, err := s.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Set(key string, value []byte) error {
	return s.c.Set(key, value)
}

func (s *Store) Del(key string) error {
	err := s.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (s *Store) Reset() error { return s.c.Reset() }

func (s *Store) Close() error { return s.c.Close() }
