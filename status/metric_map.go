package status

import (
	"slices"
	"strings"
	"sync"
)

// MetricMap holds the metrics of one value type keyed by dotted name ("net.reconnects")
// Writers resolve a key once and keep the pointer; only resolution and iteration lock
type MetricMap[T any] struct {
	mu      sync.Mutex
	byName  map[string]*T
	ordered []string // kept sorted for Range
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{byName: make(map[string]*T)}
}

// Get resolves key to its metric, allocating a zero value the first time
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ptr, ok := m.byName[key]; ok {
		return ptr
	}
	ptr := new(T)
	m.byName[key] = ptr

	i, _ := slices.BinarySearch(m.ordered, key)
	m.ordered = slices.Insert(m.ordered, i, key)
	return ptr
}

// Has reports whether key was ever resolved
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byName[key]
	return ok
}

// Range visits metrics in key order; fn must not call back into the map
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range m.ordered {
		fn(k, m.byName[k])
	}
}

// Prefix returns the sorted keys under a subsystem prefix such as "net."
func (m *MetricMap[T]) Prefix(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []string
	for _, k := range m.ordered {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// Count returns the number of resolved keys
func (m *MetricMap[T]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ordered)
}
