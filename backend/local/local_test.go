package local

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/unkn0wn-root/replaycache/internal/wire"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	l := New(nil)
	t.Cleanup(func() { _ = l.Close(context.Background()) })
	return l
}

func TestSetGetMissAndCopy(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	if _, ok, err := l.Get(ctx, "nope"); err != nil || ok {
		t.Fatalf("miss expected, ok=%v err=%v", ok, err)
	}

	in := []byte("value")
	if err := l.Set(ctx, "k", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = 'X' // caller mutation must not leak into the store

	got, ok, err := l.Get(ctx, "k")
	if err != nil || !ok || string(got) != "value" {
		t.Fatalf("Get: got=%q ok=%v err=%v", got, ok, err)
	}
	got[0] = 'Y'
	again, _, _ := l.Get(ctx, "k")
	if string(again) != "value" {
		t.Fatalf("returned slice aliases stored bytes: %q", again)
	}
}

func TestIncrFromMissingAndText(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	for i := int64(1); i <= 3; i++ {
		n, err := l.Incr(ctx, "ctr")
		if err != nil || n != i {
			t.Fatalf("Incr #%d: n=%d err=%v", i, n, err)
		}
	}
	raw, ok, err := l.Get(ctx, "ctr")
	if err != nil || !ok || string(raw) != "3" {
		t.Fatalf("counter should read back as decimal text, got %q ok=%v err=%v", raw, ok, err)
	}

	_ = l.Set(ctx, "word", []byte("abc"))
	if _, err := l.Incr(ctx, "word"); !errors.Is(err, ErrNotInteger) {
		t.Fatalf("expected ErrNotInteger, got %v", err)
	}
	_ = l.Set(ctx, "max", []byte(strconv.FormatInt(1<<63-1, 10)))
	if _, err := l.Incr(ctx, "max"); !errors.Is(err, ErrNotInteger) {
		t.Fatalf("expected overflow to fail, got %v", err)
	}
}

func TestWrongType(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	if _, err := l.RPush(ctx, "list", []byte("a")); err != nil {
		t.Fatalf("RPush: %v", err)
	}
	if _, _, err := l.Get(ctx, "list"); !errors.Is(err, ErrWrongType) {
		t.Fatalf("Get on list: expected ErrWrongType, got %v", err)
	}
	if _, err := l.Incr(ctx, "list"); !errors.Is(err, ErrWrongType) {
		t.Fatalf("Incr on list: expected ErrWrongType, got %v", err)
	}

	_ = l.Set(ctx, "str", []byte("x"))
	if _, err := l.RPush(ctx, "str", []byte("a")); !errors.Is(err, ErrWrongType) {
		t.Fatalf("RPush on string: expected ErrWrongType, got %v", err)
	}
	if _, err := l.LRange(ctx, "str", 0, -1); !errors.Is(err, ErrWrongType) {
		t.Fatalf("LRange on string: expected ErrWrongType, got %v", err)
	}
}

func TestCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s := NewMapStore()
	l := New(s)

	// Corrupt bytes are deleted on read and the key misses.
	_ = s.Set("foreign", []byte("not-wire-format"))
	if v, ok, err := l.Get(ctx, "foreign"); err != nil || ok || v != nil {
		t.Fatalf("Get on corrupt should miss, v=%q ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := s.Get("foreign"); ok {
		t.Fatalf("corrupt entry was not deleted")
	}

	// Valid header with a truncated payload is corrupt too.
	_ = s.Set("short", wire.EncodeString([]byte("payload"))[:8])
	if _, ok, err := l.Get(ctx, "short"); err != nil || ok {
		t.Fatalf("Get on truncated should miss, ok=%v err=%v", ok, err)
	}
	if _, ok, _ := s.Get("short"); ok {
		t.Fatalf("truncated entry was not deleted")
	}

	_ = s.Set("junk", []byte("junk"))
	if ok, err := l.Exists(ctx, "junk"); err != nil || ok {
		t.Fatalf("Exists on corrupt should be false, ok=%v err=%v", ok, err)
	}
	if _, ok, _ := s.Get("junk"); ok {
		t.Fatalf("corrupt entry was not deleted by Exists")
	}

	// A corrupt counter restarts.
	_ = s.Set("ctr", []byte{0xde, 0xad})
	if n, err := l.Incr(ctx, "ctr"); err != nil || n != 1 {
		t.Fatalf("Incr over corrupt = %d, %v; want 1", n, err)
	}

	// A corrupt list reads empty and RPush starts a new one.
	_ = s.Set("lst", []byte("junk"))
	if items, err := l.LRange(ctx, "lst", 0, -1); err != nil || len(items) != 0 {
		t.Fatalf("LRange over corrupt = %q, %v", items, err)
	}
	_ = s.Set("lst", []byte("junk"))
	if n, err := l.RPush(ctx, "lst", []byte("a")); err != nil || n != 1 {
		t.Fatalf("RPush over corrupt = %d, %v; want 1", n, err)
	}
}

// failDelStore fails Del so dropCorrupt's error surfaces.
type failDelStore struct {
	*MapStore
	err error
}

func (s failDelStore) Del(string) error { return s.err }

func TestCorruptEntryDeleteFailure(t *testing.T) {
	boom := errors.New("del failed")
	s := failDelStore{MapStore: NewMapStore(), err: boom}
	l := New(s)

	_ = s.Set("foreign", []byte("x"))
	if _, _, err := l.Get(context.Background(), "foreign"); !errors.Is(err, boom) {
		t.Fatalf("expected Del error, got %v", err)
	}
}

func TestLRangeIndexes(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	for _, v := range []string{"a", "b", "c", "d"} {
		if _, err := l.RPush(ctx, "l", []byte(v)); err != nil {
			t.Fatalf("RPush: %v", err)
		}
	}

	cases := []struct {
		start, stop int64
		want        string
	}{
		{0, -1, "abcd"},
		{1, 2, "bc"},
		{-2, -1, "cd"},
		{0, 100, "abcd"},
		{-100, 0, "a"},
		{3, 1, ""},
		{10, 20, ""},
	}
	for _, tc := range cases {
		got, err := l.LRange(ctx, "l", tc.start, tc.stop)
		if err != nil {
			t.Fatalf("LRange(%d,%d): %v", tc.start, tc.stop, err)
		}
		var s string
		for _, it := range got {
			s += string(it)
		}
		if s != tc.want {
			t.Fatalf("LRange(%d,%d) = %q want %q", tc.start, tc.stop, s, tc.want)
		}
	}

	empty, err := l.LRange(ctx, "missing", 0, -1)
	if err != nil || len(empty) != 0 {
		t.Fatalf("missing list: %q err=%v", empty, err)
	}
}

func TestConcurrentIncrAndPush(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = l.Incr(ctx, "ctr")
			_, _ = l.RPush(ctx, "l", []byte("x"))
		}()
	}
	wg.Wait()

	raw, _, _ := l.Get(ctx, "ctr")
	if string(raw) != strconv.Itoa(n) {
		t.Fatalf("counter=%s want %d", raw, n)
	}
	items, _ := l.LRange(ctx, "l", 0, -1)
	if len(items) != n {
		t.Fatalf("list len=%d want %d", len(items), n)
	}
}

func TestFlushAndClose(t *testing.T) {
	ctx := context.Background()
	l := New(nil)

	_ = l.Set(ctx, "k", []byte("v"))
	if err := l.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if ok, _ := l.Exists(ctx, "k"); ok {
		t.Fatalf("key survived flush")
	}

	if err := l.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := l.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := l.Set(ctx, "k", nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
