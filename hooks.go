package replaycache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; wrap slow ones in hooks/async.
type Hooks interface {
	// New flushed the backend.
	BackendReset()

	// A Store call failed; err is a *BackendError.
	StoreFailed(err error)

	// A read found no value under key.
	Miss(key string)

	// A decoder rejected the bytes stored under key.
	DecodeFailed(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) BackendReset()              {}
func (NopHooks) StoreFailed(error)          {}
func (NopHooks) Miss(string)                {}
func (NopHooks) DecodeFailed(string, error) {}
