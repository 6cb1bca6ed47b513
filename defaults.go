package replaycache

import "github.com/google/uuid"

// DefaultIdentity names the Store operation in the backend when Options.Identity is empty.
const DefaultIdentity = "Cache.store"

func defaultKey() string { return uuid.NewString() }

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
