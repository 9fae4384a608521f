package mysql

import (
	"context"
	"fmt"

	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence"
	"restaurant/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// EventJournal appends drained events to domain_events inside the save
// transaction. It is an audit trail; dispatch stays in-process.
type EventJournal struct {
	db *gorm.DB
}

func NewEventJournal(db *gorm.DB) *EventJournal {
	return &EventJournal{db: db}
}

func (j *EventJournal) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return j.db.WithContext(ctx)
}

func (j *EventJournal) Append(ctx context.Context, events []shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]*po.DomainEventPO, 0, len(events))
	for i, event := range events {
		if err := shared.ValidateEvent(event); err != nil {
			return fmt.Errorf("invalid domain event: %w", err)
		}
		row, err := po.FromDomainEvent(event, i)
		if err != nil {
			return fmt.Errorf("failed to convert domain event: %w", err)
		}
		rows = append(rows, row)
	}
	if err := j.getDB(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to append events to journal: %w", err)
	}
	return nil
}

// FindByAggregateID returns the journal of one aggregate, oldest first.
func (j *EventJournal) FindByAggregateID(ctx context.Context, aggregateID string) ([]po.DomainEventPO, error) {
	var rows []po.DomainEventPO
	err := j.getDB(ctx).
		Where("aggregate_id = ?", aggregateID).
		Order("occurred_on ASC").Order("sequence ASC").
		Find(&rows).Error
	return rows, err
}
