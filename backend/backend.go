// Package backend defines the key-value store consumed by replaycache.
//
// A Backend holds everything: stored values, per-operation call counters and the
// input/output history lists. Every method must be atomic for the key it touches;
// replaycache relies on that for counter accuracy and for index alignment between
// an operation's input and output lists. No cross-key transactions are assumed.
//
// Implementations must be byte-for-byte transparent: Get returns exactly the bytes
// previously passed to Set, and LRange returns exactly the bytes passed to RPush.
package backend

import "context"

// Backend is the minimal store protocol. Must be safe for concurrent use.
type Backend interface {
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Incr atomically adds one to the integer stored at key and returns the new value.
	// A missing key counts as 0.
	Incr(ctx context.Context, key string) (int64, error)

	// Exists reports whether key holds any value.
	Exists(ctx context.Context, key string) (bool, error)

	// RPush appends value to the list at key and returns the new length.
	RPush(ctx context.Context, key string, value []byte) (int64, error)

	// LRange returns list elements from start to stop, both inclusive.
	// Negative indexes count from the end (-1 is the last element).
	// A missing key yields an empty slice.
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// Flush removes every key in the backend's namespace.
	Flush(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}
