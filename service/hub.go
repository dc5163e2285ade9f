package service

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrCircularDependency is returned when service dependencies form a cycle
var ErrCircularDependency = errors.New("circular service dependency")

// entry is one registered service and the args handed to its Init
type entry struct {
	svc  Service
	args []any
}

// Hub owns the client's long-lived services and runs their lifecycle in dependency order
type Hub struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string // dependency order, resolved by InitAll
	running []string // started services, stopped in reverse
	log     logrus.FieldLogger
}

// NewHub creates an empty hub; a nil logger discards
func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Hub{entries: make(map[string]entry), log: log}
}

// Register adds a service with the args passed to its Init
func (h *Hub) Register(svc Service, initArgs ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, dup := h.entries[name]; dup {
		return fmt.Errorf("service already registered: %s", name)
	}
	h.entries[name] = entry{svc: svc, args: initArgs}
	h.order = nil
	return nil
}

// Get returns the service registered under name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entries[name]
	return e.svc, ok
}

// Lookup returns the named service as T
func Lookup[T any](h *Hub, name string) (T, bool) {
	svc, ok := h.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := svc.(T)
	return typed, ok
}

// InitAll resolves the dependency order and initializes every service
// A failed Init stops the services already initialized, newest first
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.resolve()
		if err != nil {
			return err
		}
		h.order = order
	}

	for i, name := range h.order {
		e := h.entries[name]
		if err := e.svc.Init(e.args...); err != nil {
			h.stopReverse(h.order[:i])
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		h.log.WithField("service", name).Debug("service initialized")
	}
	return nil
}

// StartAll starts services in dependency order
// A failed Start stops the services already started
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.running = h.running[:0]
	for _, name := range h.order {
		if err := h.entries[name].svc.Start(); err != nil {
			h.stopReverse(h.running)
			h.running = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.running = append(h.running, name)
	}
	h.log.WithField("services", strings.Join(h.running, ",")).Info("services started")
	return nil
}

// StopAll stops every running service in reverse start order
// Stop errors are logged and do not interrupt the sweep
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopReverse(h.running)
	h.running = nil
}

func (h *Hub) stopReverse(names []string) {
	for _, name := range slices.Backward(names) {
		if err := h.entries[name].svc.Stop(); err != nil {
			h.log.WithError(err).WithField("service", name).Warn("service stop failed")
		}
	}
}

// resolve orders services so each follows its dependencies
// Depth-first over sorted names, so the order does not depend on map iteration
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.entries))
	order := make([]string, 0, len(h.entries))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(append(path, name), " -> "))
		}
		state[name] = visiting

		deps := slices.Sorted(slices.Values(h.entries[name].svc.Dependencies()))
		for _, dep := range deps {
			if _, ok := h.entries[dep]; !ok {
				return fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range h.namesLocked() {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (h *Hub) namesLocked() []string {
	names := make([]string, 0, len(h.entries))
	for name := range h.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Names returns the registered service names, sorted
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.namesLocked()
}
