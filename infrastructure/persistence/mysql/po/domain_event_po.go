package po

import (
	"encoding/json"
	"time"

	"restaurant/domain/cart"
	"restaurant/domain/menu"
	"restaurant/domain/shared"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DomainEventPO is one entry of the domain_events journal. Rows are written in
// the same transaction as the aggregate that emitted them and never updated.
type DomainEventPO struct {
	ID          string         `gorm:"primaryKey;size:64"`
	AggregateID string         `gorm:"size:64;index;not null"`
	EventName   string         `gorm:"size:100;index;not null"`
	Sequence    int            `gorm:"not null"`
	Payload     datatypes.JSON `gorm:"not null"`
	OccurredOn  time.Time      `gorm:"index;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (DomainEventPO) TableName() string { return "domain_events" }

// FromDomainEvent maps an event. sequence is its position in the drained batch.
func FromDomainEvent(event shared.DomainEvent, sequence int) (*DomainEventPO, error) {
	payload, err := eventPayload(event)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &DomainEventPO{
		ID:          id.String(),
		AggregateID: event.GetAggregateID(),
		EventName:   event.EventName(),
		Sequence:    sequence,
		Payload:     payload,
		OccurredOn:  event.OccurredOn(),
	}, nil
}

func eventPayload(event shared.DomainEvent) (datatypes.JSON, error) {
	data := map[string]any{
		"event_name":   event.EventName(),
		"aggregate_id": event.GetAggregateID(),
		"occurred_on":  event.OccurredOn(),
	}
	if e, ok := event.(interface{ MealID() menu.MealID }); ok {
		data["meal_id"] = string(e.MealID())
	}
	if e, ok := event.(interface{ CustomerID() cart.CustomerID }); ok {
		data["customer_id"] = string(e.CustomerID())
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (p *DomainEventPO) ToEventData() (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(p.Payload, &data); err != nil {
		return nil, err
	}
	return data, nil
}
