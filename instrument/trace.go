package instrument

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Trace opens one span named id around every call and marks it failed when the
// wrapped Func returns an error. Errors pass through unchanged.
func Trace[A, R any](tracer trace.Tracer, id string) Middleware[A, R] {
	return func(next Func[A, R]) Func[A, R] {
		return func(ctx context.Context, arg A) (R, error) {
			ctx, span := tracer.Start(ctx, id,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("replaycache.operation", id)),
			)
			defer span.End()

			res, err := next(ctx, arg)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return res, err
		}
	}
}
