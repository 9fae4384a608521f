/*
Package memory keeps aggregates in process memory.

Aggregates are stored as snapshots and rebuilt on every read, so a use case
that mutates a loaded aggregate and then fails leaves the store untouched.
Save checks the version, stores, bumps the version and then publishes the
drained events with no lock held.
*/
package memory

import (
	"context"
	"sync"

	"restaurant/domain/shared"
)

type versioned[ID comparable] interface {
	shared.AggregateRoot[ID]
	IncrementVersion()
}

type store[K comparable, ID comparable, A versioned[ID], S any] struct {
	mu        sync.RWMutex
	items     map[K]S
	keys      []K
	publisher shared.DomainEventPublisher

	key      func(A) K
	snapshot func(A) S
	restore  func(S) A
	conflict func(A) error
}

func newStore[K comparable, ID comparable, A versioned[ID], S any](
	publisher shared.DomainEventPublisher,
	key func(A) K,
	snapshot func(A) S,
	restore func(S) A,
	conflict func(A) error,
) *store[K, ID, A, S] {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &store[K, ID, A, S]{
		items:     make(map[K]S),
		publisher: publisher,
		key:       key,
		snapshot:  snapshot,
		restore:   restore,
		conflict:  conflict,
	}
}

func (s *store[K, ID, A, S]) get(key K) (A, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.items[key]
	if !ok {
		var zero A
		return zero, false
	}
	return s.restore(snap), true
}

func (s *store[K, ID, A, S]) all() []A {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]A, 0, len(s.keys))
	for _, k := range s.keys {
		result = append(result, s.restore(s.items[k]))
	}
	return result
}

func (s *store[K, ID, A, S]) save(ctx context.Context, a A, version func(S) int) error {
	if err := s.write(a, version); err != nil {
		return err
	}
	return s.publisher.Publish(ctx, a.PullEvents())
}

func (s *store[K, ID, A, S]) write(a A, version func(S) int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.key(a)
	existing, ok := s.items[k]
	switch {
	case ok && version(existing) != a.Version():
		return s.conflict(a)
	case !ok && a.Version() != 0:
		return s.conflict(a)
	}

	a.IncrementVersion()
	if !ok {
		s.keys = append(s.keys, k)
	}
	s.items[k] = s.snapshot(a)
	return nil
}

func (s *store[K, ID, A, S]) remove(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}
