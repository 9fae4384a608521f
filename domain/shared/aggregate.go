package shared

// AggregateRoot is the entry point of a consistency boundary.
// All changes go through it, and it records the domain events those changes produce.
type AggregateRoot[ID comparable] interface {
	// ID returns the identity, immutable after creation.
	ID() ID

	// Version is the optimistic concurrency version. Only repositories advance it.
	Version() int

	EventSource
}

// EventSource is anything that buffers domain events until a repository drains them.
type EventSource interface {
	// PullEvents returns the pending events in emission order and clears the buffer.
	PullEvents() []DomainEvent
}

// Aggregate holds identity, version and the pending event buffer.
// Embed it in aggregate structs instead of re-implementing the bookkeeping:
//
//	type Meal struct {
//	    shared.Aggregate[MealID]
//	    name MealName
//	}
//
// The buffer is not safe for concurrent drains of the same instance.
type Aggregate[ID comparable] struct {
	id      ID
	version int
	events  []DomainEvent
}

// NewAggregate creates the embedded base for a new or restored aggregate.
func NewAggregate[ID comparable](id ID, version int) Aggregate[ID] {
	return Aggregate[ID]{id: id, version: version}
}

func (a *Aggregate[ID]) ID() ID       { return a.id }
func (a *Aggregate[ID]) Version() int { return a.version }

// AddEvent appends an event to the buffer.
func (a *Aggregate[ID]) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// PullEvents returns all buffered events and resets the buffer.
func (a *Aggregate[ID]) PullEvents() []DomainEvent {
	events := a.events
	a.events = nil
	if events == nil {
		return []DomainEvent{}
	}
	return events
}

// PendingEvents returns a copy of the buffer without draining it.
func (a *Aggregate[ID]) PendingEvents() []DomainEvent {
	events := make([]DomainEvent, len(a.events))
	copy(events, a.events)
	return events
}

// IncrementVersion is called by a repository after a successful save.
func (a *Aggregate[ID]) IncrementVersion() {
	a.version++
}
