package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/replaycache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	MissEvery         uint64
	DecodeFailedEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	missCtr   atomic.Uint64
	decodeCtr atomic.Uint64
}

var _ replaycache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) BackendReset() {
	if h.l == nil {
		return
	}
	h.l.Info("replaycache.backend_reset")
}

func (h *Hooks) StoreFailed(err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("replaycache.store_failed", "err", err)
}

func (h *Hooks) Miss(key string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("replaycache.miss", "key", h.redact(key))
}

func (h *Hooks) DecodeFailed(key string, err error) {
	if h.l == nil || !sample(h.opts.DecodeFailedEvery, &h.decodeCtr) {
		return
	}
	h.l.Warn("replaycache.decode_failed",
		"key", h.redact(key),
		"err", err)
}
