package bus

import "errors"

var (
	ErrNilHandler          = errors.New("event handler is nil")
	ErrEmptyEventType      = errors.New("event type is empty")
	ErrForeignSubscription = errors.New("subscription does not belong to this bus")
)

// Wildcard subscribes a handler to every event type.
const Wildcard = "*"

// EventBus is a synchronous, in-process pub/sub bus for simulation events.
//
// Handlers run in the publisher goroutine, in subscription order, so a
// deterministic publisher yields a deterministic delivery sequence. Handler
// errors are joined and returned from Publish. All methods are safe for
// concurrent use.
type EventBus interface {
	// Publish delivers event to the handlers of event.Type and to wildcard handlers.
	Publish(event Event) error
	// Subscribe registers handler for eventType, or for every type with Wildcard.
	Subscribe(eventType string, handler Handler) (Subscription, error)
	// Unsubscribe cancels sub. It is safe to call with nil.
	Unsubscribe(sub Subscription) error

	AddObserver(obs Observer)
	RemoveObserver(obs Observer)
	// Metrics are only collected while at least one observer is registered.
	Metrics() Metrics
}

// Event is an immutable simulation notification.
type Event struct {
	Type   string
	Source string
	Tick   uint64
	Time   float64
	Data   any
}

type Handler func(event Event) error

type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// Observer is notified about publications. Observers should return quickly.
type Observer interface {
	OnPublish(event Event)
	OnDelivered(event Event, handlers int, err error)
}

type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
