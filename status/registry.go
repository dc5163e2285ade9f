package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Metric keys written by the client
// Transport goroutines and the main loop both write, hence atomics throughout
const (
	KeyFrames         = "render.frames"
	KeyFPS            = "render.fps"
	KeyConnected      = "net.connected"
	KeyServer         = "net.server"
	KeyReconnects     = "net.reconnects"
	KeyMessagesIn     = "net.messages_in"
	KeyDecodeErrors   = "net.decode_errors"
	KeyInboxDropped   = "net.inbox_dropped"
	KeyIntentsSent    = "net.intents_sent"
	KeyIntentsDropped = "net.intents_dropped"
	KeyLatencyMs      = "net.latency_ms"
	KeySnapshots      = "world.snapshots"
)

// Registry is the central metrics facade
// Components cache pointers during init; hot paths write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Fields returns every metric as a flat key → value map
// Used for the periodic debug log dump and the shutdown summary
func (r *Registry) Fields() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out[k] = strconv.FormatFloat(v.Get(), 'f', 2, 64)
	})
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}

// Summary renders the integer counters in key order, "k=v k=v"
func (r *Registry) Summary() string {
	s := ""
	r.Ints.Range(func(k string, v *atomic.Int64) {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%s=%d", k, v.Load())
	})
	return s
}
