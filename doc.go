// Package replaycache is a typed store/retrieve façade over a key-value backend
// that keeps an audit trail of its own store calls in the same backend.
//
// Components:
//   - Backend: atomic per-key set/get/incr/rpush/lrange store (Redis, or in-process).
//   - Cache: Store writes a scalar under a fresh uuid key; Get/GetStr/GetInt/GetAs read it back.
//   - instrument.CountCalls / instrument.RecordCalls: middleware around Store that
//     bump a call counter and append input/output history lists.
//   - instrument.Replay: prints the recorded history of an operation.
//
// Keys:
//
//	<uuid>                 - stored values
//	<identity>             - call counter (decimal text)
//	<identity>:inputs      - list of rendered call arguments
//	<identity>:outputs     - list of returned keys
//
// The default identity is "Cache.store". A Store call runs:
//
//	RPUSH Cache.store:inputs ('hello',)
//	INCR  Cache.store
//	SET   <uuid> hello
//	RPUSH Cache.store:outputs <uuid>
//
// New flushes the backend unless Options.KeepExisting is set, so every Cache
// starts with zeroed counters and empty history.
package replaycache
