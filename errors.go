package replaycache

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/replaycache/codec"
	"github.com/unkn0wn-root/replaycache/instrument"
)

var (
	// ErrBackendUnavailable matches every *BackendError.
	ErrBackendUnavailable = errors.New("replaycache: backend unavailable")
	// ErrUnsupportedType is returned by Store for values other than text, bytes, integers and floats.
	ErrUnsupportedType = codec.ErrUnsupportedType
)

// BackendError is a backend call that failed. It unwraps to both
// ErrBackendUnavailable and the backend's own error. Nothing is retried.
type BackendError struct {
	Op  string // backend step: "flush", "set", "get", "exists", "incr", "record_input", "record_output"
	Key string // empty for keyless steps
	Err error
}

func (e *BackendError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("replaycache: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("replaycache: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *BackendError) Unwrap() []error {
	return []error{ErrBackendUnavailable, e.Err}
}

// asBackendError lifts middleware failures into BackendError; errors that
// already are one pass through.
func asBackendError(op string, err error) error {
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	var ie *instrument.Error
	if errors.As(err, &ie) {
		return &BackendError{Op: ie.Step, Key: ie.Key, Err: ie.Err}
	}
	return &BackendError{Op: op, Err: err}
}
