package shared

import (
	"context"
	"fmt"
	"time"
)

// DomainEvent is an immutable fact emitted by an aggregate.
// EventName is the tag listeners subscribe to.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// DomainEventPublisher dispatches drained events to the registered listeners.
type DomainEventPublisher interface {
	Publish(ctx context.Context, events []DomainEvent) error
}

// DomainEventListener reacts to the events named by EventNames.
type DomainEventListener interface {
	Name() string
	EventNames() []string
	Handle(ctx context.Context, event DomainEvent) error
}

// BaseEvent carries the fields every event has. Embed it in concrete events.
type BaseEvent struct {
	name        string
	aggregateID string
	occurredOn  time.Time
}

// NewBaseEvent stamps an event with the current time.
func NewBaseEvent(name, aggregateID string) BaseEvent {
	return BaseEvent{
		name:        name,
		aggregateID: aggregateID,
		occurredOn:  time.Now(),
	}
}

func (e BaseEvent) EventName() string      { return e.name }
func (e BaseEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e BaseEvent) GetAggregateID() string { return e.aggregateID }

// ValidateEvent checks the fields every published event must carry.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}

// NopPublisher drops every event. Useful where nothing listens, e.g. seeding.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, []DomainEvent) error { return nil }
