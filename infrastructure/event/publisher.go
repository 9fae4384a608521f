/*
Package event is the in-process domain event publisher.

Listeners are registered once at startup. Publish hands every event, in
emission order, to each interested listener, in registration order, on the
caller's goroutine. The first listener error stops dispatch and is returned
to the caller; nothing is retried or swallowed.
*/
package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"restaurant/domain/shared"
	"restaurant/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var ErrDuplicateListener = errors.New("listener already registered for event")

// DispatchError is returned when a listener fails.
type DispatchError struct {
	Event    string
	Listener string
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("event %s: listener %s: %v", e.Event, e.Listener, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

type Publisher struct {
	mu        sync.RWMutex
	listeners map[string][]shared.DomainEventListener
	tracer    trace.Tracer
}

func NewPublisher() *Publisher {
	return &Publisher{
		listeners: make(map[string][]shared.DomainEventListener),
		tracer:    otel.Tracer("restaurant/infrastructure/event"),
	}
}

// RegisterListener subscribes l to each of its event names.
// A listener name may appear only once per event.
func (p *Publisher) RegisterListener(l shared.DomainEventListener) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, name := range l.EventNames() {
		for _, existing := range p.listeners[name] {
			if existing.Name() == l.Name() {
				return fmt.Errorf("%w: %s on %s", ErrDuplicateListener, l.Name(), name)
			}
		}
	}
	for _, name := range l.EventNames() {
		p.listeners[name] = append(p.listeners[name], l)
	}
	logger.Info("event listener registered",
		zap.String("listener", l.Name()),
		zap.Strings("events", l.EventNames()))
	return nil
}

// Listeners returns a snapshot of the listeners for an event, in registration order.
func (p *Publisher) Listeners(eventName string) []shared.DomainEventListener {
	p.mu.RLock()
	defer p.mu.RUnlock()
	listeners := make([]shared.DomainEventListener, len(p.listeners[eventName]))
	copy(listeners, p.listeners[eventName])
	return listeners
}

// Publish dispatches the events synchronously. The registry lock is not held
// while listeners run, so a listener may save aggregates and publish again.
func (p *Publisher) Publish(ctx context.Context, events []shared.DomainEvent) error {
	for _, e := range events {
		if err := p.dispatch(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) dispatch(ctx context.Context, e shared.DomainEvent) error {
	if err := shared.ValidateEvent(e); err != nil {
		return err
	}

	ctx, span := p.tracer.Start(ctx, "event "+e.EventName(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("event.name", e.EventName()),
			attribute.String("event.aggregate_id", e.GetAggregateID()),
		))
	defer span.End()

	log := logger.WithContext(ctx)
	for _, l := range p.Listeners(e.EventName()) {
		log.Debug("dispatching event",
			zap.String("event", e.EventName()),
			zap.String("aggregate_id", e.GetAggregateID()),
			zap.String("listener", l.Name()))

		if err := l.Handle(ctx, e); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, l.Name()+" failed")
			log.Error("event listener failed",
				zap.String("event", e.EventName()),
				zap.String("aggregate_id", e.GetAggregateID()),
				zap.String("listener", l.Name()),
				zap.Error(err))
			return &DispatchError{Event: e.EventName(), Listener: l.Name(), Err: err}
		}
	}
	return nil
}

var _ shared.DomainEventPublisher = (*Publisher)(nil)
