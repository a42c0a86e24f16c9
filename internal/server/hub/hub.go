// Package hub fans published values out to in-process subscribers.
package hub

import "sync"

// DefaultBuffer is the per-subscriber queue length used by New.
const DefaultBuffer = 256

// Hub delivers every published value to each subscriber whose filter accepts
// it. Publish never blocks: a subscriber whose queue is full is dropped and
// its channel closed, so readers must treat a closed channel as "fell behind"
// unless they cancelled themselves.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*subscriber[T]
	buffer int
}

type subscriber[T any] struct {
	ch     chan T
	filter func(T) bool
}

func New[T any]() *Hub[T] {
	return NewWithBuffer[T](DefaultBuffer)
}

func NewWithBuffer[T any](buffer int) *Hub[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub[T]{subs: make(map[uint64]*subscriber[T]), buffer: buffer}
}

// Subscribe registers a subscriber. A nil filter accepts everything. The
// returned cancel func is idempotent and closes the channel if the hub has
// not already done so.
func (h *Hub[T]) Subscribe(filter func(T) bool) (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	s := &subscriber[T]{ch: make(chan T, h.buffer), filter: filter}
	h.subs[id] = s

	return s.ch, func() { h.remove(id) }
}

func (h *Hub[T]) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(s.ch)
	}
}

func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, s := range h.subs {
		if s.filter != nil && !s.filter(v) {
			continue
		}
		select {
		case s.ch <- v:
		default:
			delete(h.subs, id)
			close(s.ch)
		}
	}
}

// Len reports the number of live subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops every subscriber.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, s := range h.subs {
		delete(h.subs, id)
		close(s.ch)
	}
}
