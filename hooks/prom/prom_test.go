package prom

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/unkn0wn-root/replaycache"
	"github.com/unkn0wn-root/replaycache/backend/local"
)

func TestCountersFollowCacheEvents(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	h, err := New(reg, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c, err := replaycache.New(ctx, replaycache.Options{Backend: local.New(nil), Hooks: h})
	if err != nil {
		t.Fatalf("replaycache.New: %v", err)
	}
	defer c.Close(ctx)

	k, _ := c.Store(ctx, "abc")
	_, _, _ = c.Get(ctx, "missing")
	_, _, _ = c.GetInt(ctx, k)

	if v := testutil.ToFloat64(h.resets); v != 1 {
		t.Fatalf("resets=%v", v)
	}
	if v := testutil.ToFloat64(h.misses); v != 1 {
		t.Fatalf("misses=%v", v)
	}
	if v := testutil.ToFloat64(h.decodeFailures); v != 1 {
		t.Fatalf("decode failures=%v", v)
	}

	h.StoreFailed(&replaycache.BackendError{Op: "set", Err: errors.New("down")})
	h.StoreFailed(errors.New("other"))
	if v := testutil.ToFloat64(h.storeFailures.WithLabelValues("set")); v != 1 {
		t.Fatalf("store failures{op=set}=%v", v)
	}
	if v := testutil.ToFloat64(h.storeFailures.WithLabelValues("unknown")); v != 1 {
		t.Fatalf("store failures{op=unknown}=%v", v)
	}
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(reg, "x"); err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(reg, "x"); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
