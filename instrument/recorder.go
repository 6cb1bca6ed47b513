package instrument

import (
	"context"

	"github.com/unkn0wn-root/replaycache/backend"
	"github.com/unkn0wn-root/replaycache/internal/keys"
)

// RecordOptions controls how arguments and results are serialized.
// Nil fields use the defaults.
type RecordOptions[A, R any] struct {
	Input  func(A) []byte // default: ArgsRepr(arg)
	Output func(R) []byte // default: Text(result)
}

// RecordCalls appends the serialized argument to "<id>:inputs", runs the wrapped
// Func, then appends the serialized result to "<id>:outputs". Each append is a
// single RPUSH, so concurrent calls keep the two lists index-aligned.
func RecordCalls[A, R any](b backend.Backend, id string, opts RecordOptions[A, R]) Middleware[A, R] {
	inKey, outKey := keys.History(id)
	in := opts.Input
	if in == nil {
		in = func(a A) []byte { return []byte(ArgsRepr(a)) }
	}
	out := opts.Output
	if out == nil {
		out = func(r R) []byte { return Text(r) }
	}
	return func(next Func[A, R]) Func[A, R] {
		return func(ctx context.Context, arg A) (R, error) {
			var zero R
			if _, err := b.RPush(ctx, inKey, in(arg)); err != nil {
				return zero, &Error{Step: "record_input", Key: inKey, Err: err}
			}
			res, err := next(ctx, arg)
			if err != nil {
				return zero, err
			}
			if _, err := b.RPush(ctx, outKey, out(res)); err != nil {
				return zero, &Error{Step: "record_output", Key: outKey, Err: err}
			}
			return res, nil
		}
	}
}
