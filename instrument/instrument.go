// Package instrument wraps operations with call accounting kept in a backend.
//
// An operation is a Func[A, R]. Middleware returns a new Func with the same
// signature that runs extra steps around the wrapped one:
//
//   - CountCalls: INCR <id> before every call.
//   - RecordCalls: RPUSH <id>:inputs before the call, RPUSH <id>:outputs after it.
//   - Trace: one OpenTelemetry span per call.
//
// Bind composes middleware around a Func and keeps the identity and backend it was
// bound to, so ReadHistory and Replay can later find the same state. Nothing is
// derived by reflection; the identity string is always passed in.
//
// Index i of the inputs list, index i of the outputs list and the i-th counted
// call describe the same invocation, provided every call completes. A call whose
// wrapped Func fails records its input but no output.
package instrument

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/replaycache/backend"
)

// Func is an instrumentable operation taking one argument. Operations with several
// arguments take a struct.
type Func[A, R any] func(ctx context.Context, arg A) (R, error)

// Middleware wraps a Func, preserving its signature.
type Middleware[A, R any] func(next Func[A, R]) Func[A, R]

// Ref identifies an instrumented operation and the backend holding its history.
type Ref interface {
	Identity() string
	Backend() backend.Backend
}

// Op is a Func bound to an identity and a backend.
type Op[A, R any] struct {
	id string
	b  backend.Backend
	fn Func[A, R]
}

var _ Ref = (*Op[any, any])(nil)

// Bind applies mw to fn and binds the result to (b, id). The first middleware
// is the outermost: Bind(b, id, fn, m1, m2) runs m1, then m2, then fn.
func Bind[A, R any](b backend.Backend, id string, fn Func[A, R], mw ...Middleware[A, R]) *Op[A, R] {
	for i := len(mw) - 1; i >= 0; i-- {
		fn = mw[i](fn)
	}
	return &Op[A, R]{id: id, b: b, fn: fn}
}

// Call runs the operation with all middleware.
func (o *Op[A, R]) Call(ctx context.Context, arg A) (R, error) {
	return o.fn(ctx, arg)
}

// Identity returns "" for a nil Op.
func (o *Op[A, R]) Identity() string {
	if o == nil {
		return ""
	}
	return o.id
}

// Backend returns nil for a nil Op.
func (o *Op[A, R]) Backend() backend.Backend {
	if o == nil {
		return nil
	}
	return o.b
}

// Error reports a failed backend step of a middleware. The wrapped Func did not
// run when Step is "incr" or "record_input".
type Error struct {
	Step string // "incr", "record_input", "record_output"
	Key  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("instrument: %s %q: %v", e.Step, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
