package event

import "sync"

// Handler receives a published event
// Called synchronously on the publishing goroutine (the frame loop)
type Handler func(ev Event)

// Subscription identifies a registered handler
type Subscription uint64

type subscriber struct {
	id      Subscription
	types   map[EventType]struct{} // empty = all types
	handler Handler
}

// Bus dispatches events to subscribers in registration order
//
// Architecture:
//   - Publish is synchronous; handlers must not block the frame loop
//   - A handler may unsubscribe itself or others during dispatch
//   - Subscribe/Unsubscribe are safe from other goroutines
type Bus struct {
	mu     sync.Mutex
	nextID Subscription
	subs   []subscriber
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for types, or for every type when none are given
func (b *Bus) Subscribe(handler Handler, types ...EventType) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := subscriber{id: b.nextID, handler: handler}
	if len(types) > 0 {
		s.types = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			s.types[t] = struct{}{}
		}
	}
	b.subs = append(b.subs, s)
	return s.id
}

// Unsubscribe removes a handler, returns false if it was not registered
func (b *Bus) Unsubscribe(id Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers ev to matching handlers
// Handlers removed mid-dispatch are skipped
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	snapshot := make([]subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		if s.types != nil {
			if _, ok := s.types[ev.Type]; !ok {
				continue
			}
		}
		if !b.active(s.id) {
			continue
		}
		s.handler(ev)
	}
}

// Count returns the number of registered handlers
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Bus) active(id Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.id == id {
			return true
		}
	}
	return false
}
