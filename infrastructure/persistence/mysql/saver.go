package mysql

import (
	"context"

	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence"
	"restaurant/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

type trackedAggregate interface {
	Version() int
	IncrementVersion()
	PendingEvents() []shared.DomainEvent
	PullEvents() []shared.DomainEvent
}

// saver runs one aggregate write and its journal entries in a transaction,
// retrying transient failures. Events are published only after commit, with
// the caller's context, so listeners never see the transaction.
type saver struct {
	db        *gorm.DB
	journal   *EventJournal
	publisher shared.DomainEventPublisher
	retry     retry.Config
}

func (s *saver) save(ctx context.Context, a trackedAggregate, write func(ctx context.Context) error) error {
	events := a.PendingEvents()

	err := retry.ExecuteWithRetry(ctx, s.retry, func(ctx context.Context) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txCtx := persistence.ContextWithTx(ctx, tx)
			if err := write(txCtx); err != nil {
				return err
			}
			return s.journal.Append(txCtx, events)
		})
	})
	if err != nil {
		return err
	}

	a.IncrementVersion()
	return s.publisher.Publish(ctx, a.PullEvents())
}

func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
