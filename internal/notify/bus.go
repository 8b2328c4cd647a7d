// Package notify carries the process-wide signal that a stock-affecting
// mutation occurred, so independent views can refresh. Delivery is
// fire-and-forget to currently registered subscribers; correctness always
// comes from re-reading the resolver, never from this bus.
package notify

import (
	"sync"
	"time"
)

// Event describes one stock mutation: which locations it touched and the
// version marker after the write.
type Event struct {
	Locations []string  `json:"locations"`
	Version   int64     `json:"version"`
	At        time.Time `json:"at"`
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(Event)

// Bus is an in-process publish/subscribe observer list.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]Handler
}

// NewBus builds an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its unsubscribe func.
// Subscribers registered after a publish do not see that publish.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers the event to every currently registered subscriber.
func (b *Bus) Publish(locations []string, version int64) {
	ev := Event{Locations: locations, Version: version, At: time.Now()}

	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
