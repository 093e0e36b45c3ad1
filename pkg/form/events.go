package form

import (
	"context"
	"sync"
)

// EventKind names what happened to a field.
type EventKind string

const (
	EventMounted    EventKind = "mounted"
	EventUnmounted  EventKind = "unmounted"
	EventChanged    EventKind = "changed"
	EventFocused    EventKind = "focused"
	EventBlurred    EventKind = "blurred"
	EventValidating EventKind = "validating"
	EventValidated  EventKind = "validated"
	EventUpdated    EventKind = "updated"
)

// FieldEvent is published to subscribers after a field's state commits.
type FieldEvent struct {
	FormID string
	Field  string
	Kind   EventKind
	State  FieldState
}

// Subscription receives field events until it is closed or its context ends.
type Subscription struct {
	ch     chan FieldEvent
	hub    *eventHub
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

// C returns the event channel. It is closed when the subscription closes.
func (s *Subscription) C() <-chan FieldEvent {
	return s.ch
}

// Close stops delivery. It is safe to call more than once.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		s.hub.remove(s)
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()
	})
	return nil
}

func (s *Subscription) send(ev FieldEvent) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// eventHub fans events out to subscribers. A subscriber whose buffer is full
// misses the event; publishing never blocks a field.
type eventHub struct {
	mu         sync.RWMutex
	subs       map[*Subscription]struct{}
	bufferSize int
}

func newEventHub(bufferSize int) *eventHub {
	return &eventHub{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

func (h *eventHub) subscribe(ctx context.Context) *Subscription {
	sub := &Subscription{ch: make(chan FieldEvent, h.bufferSize), hub: h}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			_ = sub.Close()
		}()
	}
	return sub
}

func (h *eventHub) remove(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

// publish returns the number of subscribers that missed ev.
func (h *eventHub) publish(ev FieldEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	dropped := 0
	for sub := range h.subs {
		if !sub.send(ev) {
			dropped++
		}
	}
	return dropped
}
