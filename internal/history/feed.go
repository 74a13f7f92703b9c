package history

import (
	"context"
	"encoding/json"
	"time"

	pubsubv2 "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
	"github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
	"github.com/tlca-systems/register-backend/pkg/pubsub"
)

const envelopeVersion = 1

// ChangeEnvelope is the wire format carried on the change feed. Origin names
// the register that produced the event so every register can drop its own
// echoes.
type ChangeEnvelope struct {
	Version    int                   `json:"version"`
	EventID    string                `json:"eventId"`
	Origin     string                `json:"origin"`
	Type       enums.ChangeEventType `json:"type"`
	Order      *models.Order         `json:"order,omitempty"`
	OrderID    uuid.UUID             `json:"orderId,omitempty"`
	OccurredAt time.Time             `json:"occurredAt"`
}

// FeedPublisher broadcasts locally-written changes on the orders topic.
type FeedPublisher struct {
	publisher *pubsubv2.Publisher
	origin    string
}

// NewFeedPublisher wires the Publisher interface to the orders topic.
func NewFeedPublisher(client *pubsub.Client, origin string) (*FeedPublisher, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "history: pubsub client is required")
	}
	pub := client.OrdersPublisher()
	if pub == nil {
		return nil, errors.New(errors.CodeInternal, "history: orders topic is not configured")
	}
	if origin == "" {
		return nil, errors.New(errors.CodeInternal, "history: origin register id is required")
	}
	return &FeedPublisher{publisher: pub, origin: origin}, nil
}

// PublishChange sends one change event and waits for the broker ack.
func (p *FeedPublisher) PublishChange(ctx context.Context, event ChangeEvent) error {
	envelope := ChangeEnvelope{
		Version:    envelopeVersion,
		EventID:    uuid.NewString(),
		Origin:     p.origin,
		Type:       event.Type,
		Order:      event.Order,
		OrderID:    event.OrderID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding change envelope")
	}

	result := p.publisher.Publish(ctx, &pubsubv2.Message{
		Data:       payload,
		Attributes: map[string]string{"origin": p.origin, "type": string(event.Type)},
	})
	if _, err := result.Get(ctx); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "publishing change event")
	}
	return nil
}

// Consumer pulls change events published by the other registers and merges
// them into the store.
type Consumer struct {
	subscription *pubsubv2.Subscriber
	store        *Store
	logg         *logger.Logger
}

// NewConsumer wires the orders subscription to the store.
func NewConsumer(client *pubsub.Client, store *Store, logg *logger.Logger) (*Consumer, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "history: pubsub client is required")
	}
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "history: store is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "history: logger is required")
	}
	sub := client.OrdersSubscription()
	if sub == nil {
		return nil, errors.New(errors.CodeInternal, "history: orders subscription is not configured")
	}
	return &Consumer{subscription: sub, store: store, logg: logg}, nil
}

// Run blocks receiving change events until ctx is cancelled. Malformed
// messages are acked and dropped; redelivery cannot fix a payload this
// process cannot parse.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsubv2.Message) {
		var envelope ChangeEnvelope
		if err := json.Unmarshal(msg.Data, &envelope); err != nil {
			c.logg.Error(ctx, "change feed: dropping malformed message", err)
			msg.Ack()
			return
		}

		if envelope.Origin == c.store.RegisterID() {
			msg.Ack()
			return
		}

		c.store.ApplyExternalChange(ctx, ChangeEvent{
			Type:    envelope.Type,
			Order:   envelope.Order,
			OrderID: envelope.OrderID,
		})
		msg.Ack()
	})
}
