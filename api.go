package replaycache

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/trace"

	"github.com/unkn0wn-root/replaycache/backend"
	"github.com/unkn0wn-root/replaycache/instrument"
)

// Options configure a Cache. Only Backend is required; others have sensible defaults.
type Options struct {
	// Required
	Backend backend.Backend

	Logger       Logger        // if nil, NopLogger is used
	Hooks        Hooks         // if nil, NopHooks is used
	Identity     string        // operation identity of Store; "" => "Cache.store"
	KeyFunc      func() string // key generator; nil => uuid.NewString
	KeepExisting bool          // default false => flush the backend in New
	Tracer       trace.Tracer  // optional; wraps Store in a span per call
}

// New connects a Cache to opts.Backend and, unless KeepExisting is set, flushes it.
func New(ctx context.Context, opts Options) (*Cache, error) {
	if opts.Backend == nil {
		return nil, errors.New("replaycache: backend is required")
	}

	c := &Cache{
		b:      opts.Backend,
		newKey: opts.KeyFunc,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.id = coalesce(opts.Identity, DefaultIdentity)
	if c.newKey == nil {
		c.newKey = defaultKey
	}

	if !opts.KeepExisting {
		if err := c.b.Flush(ctx); err != nil {
			return nil, &BackendError{Op: "flush", Err: err}
		}
		c.log.Info("backend reset", Fields{"identity": c.id})
		c.hooks.BackendReset()
	}

	// Order matters: input is recorded before the counter moves and the output
	// after the value is written.
	mw := make([]instrument.Middleware[any, string], 0, 3)
	if opts.Tracer != nil {
		mw = append(mw, instrument.Trace[any, string](opts.Tracer, c.id))
	}
	mw = append(mw,
		instrument.RecordCalls(c.b, c.id, instrument.RecordOptions[any, string]{}),
		instrument.CountCalls[any, string](c.b, c.id),
	)
	c.store = instrument.Bind(c.b, c.id, c.set, mw...)
	return c, nil
}
