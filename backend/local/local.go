// Package local implements backend.Backend inside the process.
//
// Values, counters and lists live in a ByteStore (a plain map by default, or
// bigcache/ristretto via their subpackages) framed by a small binary header that
// records the entry kind. Per-key atomicity comes from a single mutex around every
// read-modify-write, so Incr and RPush are safe under concurrent callers.
//
// Entries that fail to decode are deleted on first read and treated as missing,
// so a counter over a corrupt entry restarts at 1.
//
// A list is one framed entry. RPush decodes and re-encodes the whole list, so
// appending N elements copies O(N²) bytes over the life of the key. That is fine
// for tests and modest histories; long-running, history-heavy workloads belong on
// backend/redis, where RPUSH is O(1).
//
// State does not survive the process; use backend/redis for that.
package local

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"

	"github.com/unkn0wn-root/replaycache/backend"
	"github.com/unkn0wn-root/replaycache/internal/wire"
)

var (
	// ErrWrongType mirrors Redis WRONGTYPE: a string operation hit a list or vice versa.
	ErrWrongType = errors.New("local backend: operation against a key holding the wrong kind of value")
	// ErrNotInteger is returned by Incr when the stored value is not a base-10 int64.
	ErrNotInteger = errors.New("local backend: value is not an integer or out of range")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("local backend: closed")
)

type Local struct {
	mu     sync.RWMutex
	s      ByteStore
	closed bool
}

var _ backend.Backend = (*Local)(nil)

// New wraps s. A nil store means NewMapStore().
func New(s ByteStore) *Local {
	if s == nil {
		s = NewMapStore()
	}
	return &Local{s: s}
}

func (l *Local) Set(_ context.Context, key string, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	return l.s.Set(key, wire.EncodeString(value))
}

func (l *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, false, ErrClosed
	}
	v, ok, err := l.getString(key)
	if err != nil || !ok {
		return nil, false, err
	}
	return append([]byte(nil), v...), true, nil
}

func (l *Local) Incr(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	v, ok, err := l.getString(key)
	if err != nil {
		return 0, err
	}
	var n int64
	if ok {
		n, err = strconv.ParseInt(string(v), 10, 64)
		if err != nil || n == math.MaxInt64 {
			return 0, ErrNotInteger
		}
	}
	n++
	if err := l.s.Set(key, wire.EncodeString(strconv.AppendInt(nil, n, 10))); err != nil {
		return 0, err
	}
	return n, nil
}

func (l *Local) Exists(_ context.Context, key string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false, ErrClosed
	}
	raw, ok, err := l.s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if _, err := wire.Kind(raw); err != nil {
		return false, l.dropCorrupt(key, err)
	}
	return true, nil
}

// RPush rewrites the whole list entry; see the package doc for the cost.
func (l *Local) RPush(_ context.Context, key string, value []byte) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrClosed
	}
	items, _, err := l.getList(key)
	if err != nil {
		return 0, err
	}
	items = append(items, value)
	if err := l.s.Set(key, wire.EncodeList(items)); err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (l *Local) LRange(_ context.Context, key string, start, stop int64) ([][]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrClosed
	}
	items, _, err := l.getList(key)
	if err != nil {
		return nil, err
	}
	n := int64(len(items))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return [][]byte{}, nil
	}
	out := make([][]byte, 0, stop-start+1)
	for _, it := range items[start : stop+1] {
		out = append(out, append([]byte(nil), it...))
	}
	return out, nil
}

func (l *Local) Flush(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	return l.s.Reset()
}

// Close closes the byte store. Safe to call multiple times.
func (l *Local) Close(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.s.Close()
}

// getString returns the raw payload of a string entry. Caller holds mu.
func (l *Local) getString(key string) ([]byte, bool, error) {
	raw, ok, err := l.s.Get(key)
	if err != nil || !ok {
		return nil, false, err
	}
	kind, err := wire.Kind(raw)
	if err != nil {
		return nil, false, l.dropCorrupt(key, err)
	}
	if kind != wire.KindString {
		return nil, false, ErrWrongType
	}
	v, err := wire.DecodeString(raw)
	if err != nil {
		return nil, false, l.dropCorrupt(key, err)
	}
	return v, true, nil
}

// getList returns the elements of a list entry; missing => empty. Caller holds mu.
func (l *Local) getList(key string) ([][]byte, bool, error) {
	raw, ok, err := l.s.Get(key)
	if err != nil || !ok {
		return nil, false, err
	}
	kind, err := wire.Kind(raw)
	if err != nil {
		return nil, false, l.dropCorrupt(key, err)
	}
	if kind != wire.KindList {
		return nil, false, ErrWrongType
	}
	items, err := wire.DecodeList(raw)
	if err != nil {
		return nil, false, l.dropCorrupt(key, err)
	}
	return items, true, nil
}

// dropCorrupt deletes an entry that failed to decode so the key reads as missing.
// Errors other than wire.ErrCorrupt are returned as-is. Caller holds mu (read or write).
func (l *Local) dropCorrupt(key string, err error) error {
	if !errors.Is(err, wire.ErrCorrupt) {
		return err
	}
	return l.s.Del(key)
}
