package instrument

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/unkn0wn-root/replaycache/backend"
	"github.com/unkn0wn-root/replaycache/codec"
	"github.com/unkn0wn-root/replaycache/internal/keys"
)

// Call is one recorded invocation.
type Call struct {
	Input  []byte
	Output []byte
}

// History is the persisted call state of one operation.
type History struct {
	Identity string
	Count    int64 // counter value; 0 when the counter key is missing
	Inputs   [][]byte
	Outputs  [][]byte
}

// Calls pairs inputs with outputs in invocation order. The shorter list bounds
// the result, so a call that failed after recording its input is left out.
func (h History) Calls() []Call {
	n := min(len(h.Inputs), len(h.Outputs))
	out := make([]Call, n)
	for i := 0; i < n; i++ {
		out[i] = Call{Input: h.Inputs[i], Output: h.Outputs[i]}
	}
	return out
}

// ReadHistory loads the counter and both history lists of id from b.
// Counter, inputs and outputs are three separate reads; calls that complete
// in between may make them disagree slightly.
func ReadHistory(ctx context.Context, b backend.Backend, id string) (History, error) {
	h := History{Identity: id}

	raw, ok, err := b.Get(ctx, keys.Counter(id))
	if err != nil {
		return h, err
	}
	if ok {
		n, err := codec.Int{}.Decode(raw)
		if err != nil {
			return h, fmt.Errorf("instrument: counter %q: %w", id, err)
		}
		h.Count = n
	}

	inKey, outKey := keys.History(id)
	if h.Inputs, err = b.LRange(ctx, inKey, 0, -1); err != nil {
		return h, err
	}
	if h.Outputs, err = b.LRange(ctx, outKey, 0, -1); err != nil {
		return h, err
	}
	return h, nil
}

// Replay writes the call history of ref to w:
//
//	Cache.store was called 2 times:
//	Cache.store(*('a',)) -> 5f0c...
//	Cache.store(*('b',)) -> 9b1e...
//
// Inputs are shown as UTF-8 text, outputs as stored. A nil ref or a ref without a
// backend writes nothing and returns nil. Backend and write errors are returned.
func Replay(ctx context.Context, w io.Writer, ref Ref) error {
	if ref == nil {
		return nil
	}
	b := ref.Backend()
	if b == nil {
		return nil
	}
	id := ref.Identity()

	h, err := ReadHistory(ctx, b, id)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s was called %d times:\n", id, h.Count)
	for _, c := range h.Calls() {
		fmt.Fprintf(&sb, "%s(*%s) -> %s\n", id, strings.ToValidUTF8(string(c.Input), "\uFFFD"), c.Output)
	}
	_, err = io.WriteString(w, sb.String())
	return err
}
