package eventbus

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/events"
)

// WatermillEventBus adapts a watermill publisher/subscriber pair to
// the EventBus interface. Transport (in-memory channel or Kafka) is
// the caller's choice; see pkg/channels.
type WatermillEventBus struct {
	publisher     message.Publisher
	subscriber    message.Subscriber
	subscriptions map[events.EventType]EventHandler
}

func NewWatermillEventBus(pub message.Publisher, sub message.Subscriber) EventBus {
	return &WatermillEventBus{
		publisher:     pub,
		subscriber:    sub,
		subscriptions: make(map[events.EventType]EventHandler),
	}
}

func (eb *WatermillEventBus) GenerateID() string {
	return watermill.NewULID()
}

func (eb *WatermillEventBus) Publish(_ context.Context, key string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage("msg-"+eb.GenerateID(), payload)
	msg.Metadata.Set(events.EventMetadataKey, key)
	msg.Metadata.Set(events.EventTypeMetadataKey, string(event.GetType()))

	return eb.publisher.Publish(events.Topic, msg)
}

func (eb *WatermillEventBus) Subscribe(ctx context.Context) error {
	messages, err := eb.subscriber.Subscribe(ctx, events.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			eventType := events.EventType(msg.Metadata.Get(events.EventTypeMetadataKey))

			handler, exists := eb.subscriptions[eventType]
			if !exists {
				msg.Ack()

				continue
			}

			event := newEvent(eventType)
			if event == nil {
				msg.Nack()

				continue
			}

			if err := json.Unmarshal(msg.Payload, event); err != nil {
				msg.Nack()

				continue
			}

			if err := handler(ctx, event); err != nil {
				msg.Nack()

				continue
			}

			msg.Ack()
		}
	}()

	return nil
}

func (eb *WatermillEventBus) Handle(eventType events.EventType, handler EventHandler) error {
	eb.subscriptions[eventType] = handler

	return nil
}

// Close shuts down both ends; a publisher close error must not leave
// the subscription running.
func (eb *WatermillEventBus) Close() error {
	return errors.Join(eb.publisher.Close(), eb.subscriber.Close())
}

func newEvent(eventType events.EventType) any {
	switch eventType {
	case events.WorkflowCreatedEvent:
		return &events.WorkflowCreated{}
	case events.WorkflowUpdatedEvent:
		return &events.WorkflowUpdated{}
	case events.WorkflowDeletedEvent:
		return &events.WorkflowDeleted{}
	case events.StatusAssignedEvent:
		return &events.StatusAssigned{}
	case events.CaseInstantiatedEvent:
		return &events.CaseInstantiated{}
	case events.CaseStepStatusEvent:
		return &events.CaseStepStatus{}
	case events.CaseFieldsSubmittedEvent:
		return &events.CaseFieldsSubmitted{}
	default:
		return nil
	}
}
