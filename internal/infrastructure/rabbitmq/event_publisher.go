package rabbitmq

import (
	"context"
	"time"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/internal/domain/repository"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

// eventMessage is the wire form of one committed domain event.
type eventMessage struct {
	EventName  string `json:"event_name"`
	UserID     string `json:"user_id"`
	OccurredAt string `json:"occurred_at"`
	Payload    any    `json:"payload,omitempty"`
}

// DomainEventPublisher pushes drained domain events onto the events queue.
// It is called by the write repository after a commit, so everything
// published here describes a durable fact.
type DomainEventPublisher struct {
	pub *helpers.RabbitPublisher
}

func NewDomainEventPublisher(pub *helpers.RabbitPublisher) *DomainEventPublisher {
	return &DomainEventPublisher{pub: pub}
}

func (p *DomainEventPublisher) Publish(ctx context.Context, userID string, events []entity.DomainEvent) error {
	for _, e := range events {
		msg := eventMessage{
			EventName:  e.EventName(),
			UserID:     userID,
			OccurredAt: e.OccurredAt().Format(time.RFC3339Nano),
			Payload:    e,
		}
		if err := p.pub.PublishJSON(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.EventPublisher = (*DomainEventPublisher)(nil)
