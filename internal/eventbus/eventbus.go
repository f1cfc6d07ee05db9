package eventbus

import (
	"runtime/debug"
	"sync"

	"photogrip/internal/domain"
	"photogrip/internal/logging"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventPhotosLoaded      = domain.EventPhotosLoaded
	EventRefreshRequested  = domain.EventRefreshRequested
	EventPersonsLoaded     = domain.EventPersonsLoaded
	EventGuestCountUpdated = domain.EventGuestCountUpdated
	EventBulkProgress      = domain.EventBulkProgress
	EventBulkCompleted     = domain.EventBulkCompleted
	EventUploadCompleted   = domain.EventUploadCompleted
	EventSessionChanged    = domain.EventSessionChanged
	EventError             = domain.EventError
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
)

// Re-export domain event types
type PhotosLoadedEvent = domain.PhotosLoadedEvent
type RefreshRequestedEvent = domain.RefreshRequestedEvent
type PersonsLoadedEvent = domain.PersonsLoadedEvent
type GuestCountUpdatedEvent = domain.GuestCountUpdatedEvent
type BulkProgressEvent = domain.BulkProgressEvent
type BulkCompletedEvent = domain.BulkCompletedEvent
type UploadCompletedEvent = domain.UploadCompletedEvent
type SessionChangedEvent = domain.SessionChangedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the concrete implementation of EventBus
type Bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	log       logging.Logger
}

// New creates a new event bus and starts its dispatcher
func New(log logging.Logger) *Bus {
	if log == nil {
		log = logging.Nop()
	}
	b := &Bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		log:       log.With("component", "eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for delivery. Events are dropped when the queue is full.
func (b *Bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventBulkProgress, EventGuestCountUpdated:
		// too frequent to log
	default:
		b.log.Debug("publishing event", "type", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		b.log.Warn("event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type and returns an unsubscribe function
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and discards queued events
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.deliver(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// deliver runs a handler synchronously so subscribers observe events in publish order.
func (b *Bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
