// Package prom exports replaycache hook events as Prometheus counters.
//
//	replaycache_backend_resets_total
//	replaycache_store_failures_total{op}
//	replaycache_misses_total
//	replaycache_decode_failures_total
package prom

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/replaycache"
)

type Hooks struct {
	resets         prometheus.Counter
	storeFailures  *prometheus.CounterVec
	misses         prometheus.Counter
	decodeFailures prometheus.Counter
}

var _ replaycache.Hooks = (*Hooks)(nil)

// New registers the counters with reg under namespace ("" => "replaycache").
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	if namespace == "" {
		namespace = "replaycache"
	}
	h := &Hooks{
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_resets_total",
			Help:      "Backend flushes performed while constructing a cache.",
		}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Store calls that failed, by backend step.",
		}, []string{"op"}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Reads that found no value.",
		}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_failures_total",
			Help:      "Reads whose decoder rejected the stored bytes.",
		}),
	}
	for _, c := range []prometheus.Collector{h.resets, h.storeFailures, h.misses, h.decodeFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) BackendReset() { h.resets.Inc() }

func (h *Hooks) StoreFailed(err error) {
	op := "unknown"
	var be *replaycache.BackendError
	if errors.As(err, &be) {
		op = be.Op
	}
	h.storeFailures.WithLabelValues(op).Inc()
}

func (h *Hooks) Miss(string) { h.misses.Inc() }

func (h *Hooks) DecodeFailed(string, error) { h.decodeFailures.Inc() }
