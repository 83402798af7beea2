// Package events carries notifications from the session to the frontends:
// transient status messages, listing refreshes, navigation, clipboard and
// pending-edit changes, and batch progress.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/filedeck/filedeck/internal/constants"
	"github.com/filedeck/filedeck/internal/localfs"
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	EventStatus    EventType = "status"
	EventListing   EventType = "listing"
	EventNavigated EventType = "navigated"
	EventClipboard EventType = "clipboard"
	EventEdit      EventType = "edit"
	EventProgress  EventType = "progress"
	EventSelection EventType = "selection"
)

// StatusLevel defines status message severity
type StatusLevel int

const (
	InfoLevel StatusLevel = iota
	SuccessLevel
	WarnLevel
	ErrorLevel
)

func (l StatusLevel) String() string {
	switch l {
	case InfoLevel:
		return "INFO"
	case SuccessLevel:
		return "SUCCESS"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// StatusEvent is a transient message for the status bar.
type StatusEvent struct {
	BaseEvent
	Message  string
	Level    StatusLevel
	Duration time.Duration // how long the message stays visible
}

// ListingEvent is published after every re-list of the current directory.
type ListingEvent struct {
	BaseEvent
	Path    string
	Entries []localfs.Entry
	Select  string // name to select and scroll to, if any
}

// NavigatedEvent is published when the current directory changes.
type NavigatedEvent struct {
	BaseEvent
	From       string
	To         string
	CanBack    bool
	CanForward bool
}

// ClipboardEvent is published when the file clipboard changes.
type ClipboardEvent struct {
	BaseEvent
	Paths []string
	Cut   bool
}

// EditEvent is published when an inline edit starts or ends.
type EditEvent struct {
	BaseEvent
	Kind    string // "create-folder", "create-file", "rename"
	Name    string // placeholder or original name
	Started bool
}

// ProgressEvent reports batch progress (paste, move, delete, bulk rename).
type ProgressEvent struct {
	BaseEvent
	Operation string
	Item      string
	Current   int64
	Total     int64
	Done      bool
}

// SelectionEvent is published by view state when the selection changes.
type SelectionEvent struct {
	BaseEvent
	Names []string
}

// EventBus manages event subscriptions and publishing
type EventBus struct {
	subscribers   map[EventType][]chan Event
	all           []chan Event // Subscribers to all events
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64 // Count of dropped events due to full buffers
}

// NewEventBus creates a new event bus with specified buffer size
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = constants.EventBusDefaultBuffer
	}
	if bufferSize > constants.EventBusMaxBuffer {
		bufferSize = constants.EventBusMaxBuffer
	}
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		all:         make([]chan Event, 0),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type
func (eb *EventBus) Subscribe(eventType EventType) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to all events
func (eb *EventBus) SubscribeAll() <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.all = append(eb.all, ch)
	return ch
}

// Publish sends an event to all subscribers without blocking.
// Events for a full subscriber are dropped and counted.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	for _, ch := range eb.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}

	for _, ch := range eb.all {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
}

// Close shuts down the event bus and closes all channels
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	eb.closed = true

	for _, channels := range eb.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	for _, ch := range eb.all {
		close(ch)
	}
}

// Status publishes a transient status message that stays visible for the
// standard display duration. It lets the bus act as the session's status sink.
func (eb *EventBus) Status(level StatusLevel, message string) {
	eb.Publish(&StatusEvent{
		BaseEvent: BaseEvent{
			EventType: EventStatus,
			Time:      time.Now(),
		},
		Message:  message,
		Level:    level,
		Duration: constants.StatusDisplayDuration,
	})
}

// PublishProgress is a convenience method for publishing progress events
func (eb *EventBus) PublishProgress(operation, item string, current, total int64, done bool) {
	eb.Publish(&ProgressEvent{
		BaseEvent: BaseEvent{
			EventType: EventProgress,
			Time:      time.Now(),
		},
		Operation: operation,
		Item:      item,
		Current:   current,
		Total:     total,
		Done:      done,
	})
}

// Unsubscribe removes a subscription channel from a specific event type
func (eb *EventBus) Unsubscribe(eventType EventType, ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	subscribers := eb.subscribers[eventType]
	for i, subCh := range subscribers {
		if subCh == ch {
			subscribers[i] = subscribers[len(subscribers)-1]
			eb.subscribers[eventType] = subscribers[:len(subscribers)-1]
			close(subCh)
			break
		}
	}
}

// GetDroppedEventCount returns the total number of events dropped due to full buffers
func (eb *EventBus) GetDroppedEventCount() int64 {
	return eb.droppedEvents.Load()
}
