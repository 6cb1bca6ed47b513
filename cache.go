package replaycache

import (
	"context"
	"fmt"
	"io"

	"github.com/unkn0wn-root/replaycache/backend"
	"github.com/unkn0wn-root/replaycache/codec"
	"github.com/unkn0wn-root/replaycache/instrument"
)

// Cache stores scalars under generated keys and reads them back. It holds no
// values itself; every call is a backend round-trip. Safe for concurrent use.
type Cache struct {
	b      backend.Backend
	log    Logger
	hooks  Hooks
	id     string
	newKey func() string
	store  *instrument.Op[any, string]
}

// Store writes data under a fresh key and returns the key. data must be a string,
// []byte, integer or float; anything else fails with ErrUnsupportedType before
// any backend call and is neither counted nor recorded. Every call that reaches the
// backend is counted and has its input recorded under Identity(); only calls that
// succeed record an output.
func (c *Cache) Store(ctx context.Context, data any) (string, error) {
	if _, err := codec.Scalar(data); err != nil {
		return "", err
	}
	key, err := c.store.Call(ctx, data)
	if err != nil {
		err = asBackendError("store", err)
		c.log.Warn("store failed", Fields{"identity": c.id, "err": err})
		c.hooks.StoreFailed(err)
		return "", err
	}
	return key, nil
}

// set is the uninstrumented store operation.
func (c *Cache) set(ctx context.Context, data any) (string, error) {
	raw, err := codec.Scalar(data)
	if err != nil {
		return "", err
	}
	key := c.newKey()
	if err := c.b.Set(ctx, key, raw); err != nil {
		return "", &BackendError{Op: "set", Key: key, Err: err}
	}
	c.log.Debug("stored value", Fields{"key": key, "size": len(raw)})
	return key, nil
}

// Get returns the raw bytes under key. A missing key is (nil, false, nil).
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, ok, err := c.b.Get(ctx, key)
	if err != nil {
		err = &BackendError{Op: "get", Key: key, Err: err}
		c.log.Warn("get failed", Fields{"key": key, "err": err})
		return nil, false, err
	}
	if !ok {
		c.hooks.Miss(key)
		return nil, false, nil
	}
	return raw, true, nil
}

// GetStr returns the value under key as UTF-8 text.
func (c *Cache) GetStr(ctx context.Context, key string) (string, bool, error) {
	return GetAs[string](ctx, c, key, codec.String{})
}

// GetInt parses the value under key as a base-10 int64. Unsigned values above
// math.MaxInt64 fail with a range error; read those with GetAs and a
// codec.DecodeFunc wrapping strconv.ParseUint.
func (c *Cache) GetInt(ctx context.Context, key string) (int64, bool, error) {
	return GetAs[int64](ctx, c, key, codec.Int{})
}

// Exists reports whether key holds a value.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := c.b.Exists(ctx, key)
	if err != nil {
		err = &BackendError{Op: "exists", Key: key, Err: err}
		c.log.Warn("exists failed", Fields{"key": key, "err": err})
		return false, err
	}
	return ok, nil
}

// Identity is the operation identity Store is counted and recorded under.
func (c *Cache) Identity() string { return c.id }

// StoreOp returns the instrumented Store operation, e.g. for instrument.Replay.
func (c *Cache) StoreOp() *instrument.Op[any, string] { return c.store }

// Replay writes the recorded Store history to w.
func (c *Cache) Replay(ctx context.Context, w io.Writer) error {
	return instrument.Replay(ctx, w, c.store)
}

// Close closes the backend.
func (c *Cache) Close(ctx context.Context) error {
	return c.b.Close(ctx)
}

// GetAs reads key and decodes it with dec. A missing key is (zero, false, nil)
// and dec is not called. Decoder errors are returned unchanged.
func GetAs[T any](ctx context.Context, c *Cache, key string, dec codec.Decoder[T]) (T, bool, error) {
	var zero T
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := dec.Decode(raw)
	if err != nil {
		c.log.Debug("decode failed", Fields{"key": key, "err": err})
		c.hooks.DecodeFailed(key, err)
		return zero, false, err
	}
	return v, true, nil
}

// StoreAs encodes v with enc and stores the bytes. The recorded input is the
// encoded byte slice.
func StoreAs[V any](ctx context.Context, c *Cache, v V, enc codec.Encoder[V]) (string, error) {
	b, err := enc.Encode(v)
	if err != nil {
		return "", fmt.Errorf("replaycache: encode: %w", err)
	}
	return c.Store(ctx, b)
}
