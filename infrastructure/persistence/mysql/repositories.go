package mysql

import (
	"restaurant/domain/shared"
	"restaurant/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// Repositories groups the gorm-backed aggregate stores sharing one saver.
type Repositories struct {
	Meals         *MealRepository
	Orders        *CustomerOrderRepository
	KitchenOrders *KitchenOrderRepository
	Journal       *EventJournal
}

func NewRepositories(db *gorm.DB, publisher shared.DomainEventPublisher, retryConfig retry.Config) *Repositories {
	journal := NewEventJournal(db)
	s := &saver{db: db, journal: journal, publisher: publisher, retry: retryConfig}
	return &Repositories{
		Meals:         &MealRepository{db: db, saver: s},
		Orders:        &CustomerOrderRepository{db: db, saver: s},
		KitchenOrders: &KitchenOrderRepository{db: db, saver: s},
		Journal:       journal,
	}
}
