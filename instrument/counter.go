package instrument

import (
	"context"

	"github.com/unkn0wn-root/replaycache/backend"
	"github.com/unkn0wn-root/replaycache/internal/keys"
)

// CountCalls increments the backend counter named id once per call, before the
// wrapped Func runs. The counter lives in the backend, so it outlives the process.
// If the increment fails the call is not made.
func CountCalls[A, R any](b backend.Backend, id string) Middleware[A, R] {
	key := keys.Counter(id)
	return func(next Func[A, R]) Func[A, R] {
		return func(ctx context.Context, arg A) (R, error) {
			if _, err := b.Incr(ctx, key); err != nil {
				var zero R
				return zero, &Error{Step: "incr", Key: key, Err: err}
			}
			return next(ctx, arg)
		}
	}
}
