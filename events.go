package btvo

import (
	"sync"
	"time"
)

// EventBus manages job event publishing and subscription.
type EventBus struct {
	mu          sync.Mutex
	subscribers map[string]chan JobEvent
	closed      bool
}

// NewEventBus creates a new EventBus.
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string]chan JobEvent),
	}
}

// Publish sends an event to all subscribers (non-blocking).
func (eb *EventBus) Publish(event JobEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Drop event for slow subscribers to avoid blocking
		}
	}
}

// Subscribe creates a new subscription and returns an event channel.
func (eb *EventBus) Subscribe(id string) <-chan JobEvent {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	ch := make(chan JobEvent, 64)
	eb.subscribers[id] = ch
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if ch, ok := eb.subscribers[id]; ok {
		close(ch)
		delete(eb.subscribers, id)
	}
}

// Close shuts down the event bus and closes all subscriber channels.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.closed = true
	for id, ch := range eb.subscribers {
		close(ch)
		delete(eb.subscribers, id)
	}
}

func (eb *EventBus) emit(eventType, jobID string, line int, character, file, errMsg string) {
	eb.Publish(JobEvent{
		Type:      eventType,
		JobID:     jobID,
		Line:      line,
		Character: character,
		File:      file,
		Error:     errMsg,
		Time:      time.Now().Unix(),
	})
}
