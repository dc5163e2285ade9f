package network

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

// Inbound is one item handed from the transport goroutines to the main loop
type Inbound struct {
	Event string
	Data  json.RawMessage
}

// droppable reports whether a newer message of the same kind supersedes this one
func (in Inbound) droppable() bool {
	switch in.Event {
	case EventGameState, EventDevData, EventPong:
		return true
	}
	return false
}

// Inbox is a bounded multi-producer, single-consumer queue drained by the main loop
// Overflow evicts the oldest superseded message (snapshot, diagnostics, pong), preferring one of
// the incoming kind; identity and lifecycle events are never evicted
type Inbox struct {
	mu       sync.Mutex
	items    []Inbound
	capacity int
	dropped  atomic.Uint64

	// notify has capacity 1: a pending signal means "drain me"
	notify chan struct{}
}

// NewInbox creates an inbox holding up to capacity droppable items
func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = 1
	}
	return &Inbox{
		items:    make([]Inbound, 0, capacity),
		capacity: capacity,
		notify:   make(chan struct{}, 1),
	}
}

// Push enqueues an item; safe for concurrent producers
// Returns false when the item itself was dropped
func (ib *Inbox) Push(in Inbound) bool {
	ib.mu.Lock()
	accepted := true
	if len(ib.items) >= ib.capacity {
		if i := ib.evictionIndex(in.Event); i >= 0 {
			ib.items = append(ib.items[:i], ib.items[i+1:]...)
			ib.dropped.Add(1)
		} else if in.droppable() {
			accepted = false
			ib.dropped.Add(1)
		}
	}
	if accepted {
		ib.items = append(ib.items, in)
	}
	ib.mu.Unlock()

	if accepted {
		select {
		case ib.notify <- struct{}{}:
		default:
		}
	}
	return accepted
}

// evictionIndex picks the oldest droppable item of the same event, else the oldest droppable one
func (ib *Inbox) evictionIndex(event string) int {
	fallback := -1
	for i := range ib.items {
		if !ib.items[i].droppable() {
			continue
		}
		if ib.items[i].Event == event {
			return i
		}
		if fallback < 0 {
			fallback = i
		}
	}
	return fallback
}

// Drain returns all pending items in FIFO order
// Single consumer: the main loop
func (ib *Inbox) Drain() []Inbound {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if len(ib.items) == 0 {
		return nil
	}
	out := ib.items
	ib.items = make([]Inbound, 0, ib.capacity)
	return out
}

// Notify is signalled after every accepted push
func (ib *Inbox) Notify() <-chan struct{} {
	return ib.notify
}

// Len returns the number of pending items
func (ib *Inbox) Len() int {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return len(ib.items)
}

// Dropped returns the number of items evicted or rejected on overflow
func (ib *Inbox) Dropped() uint64 {
	return ib.dropped.Load()
}
