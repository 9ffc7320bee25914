package eventbus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/channels/gochannel"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/eventbus"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/events"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	return eventbus.NewWatermillEventBus(pub, sub)
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	t.Cleanup(cancel)

	received := make(chan *events.CaseStepStatus, 1)

	err := bus.Handle(events.CaseStepStatusEvent, func(_ context.Context, event any) error {
		stepStatus, ok := event.(*events.CaseStepStatus)
		require.True(t, ok)

		received <- stepStatus

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, bus.Subscribe(ctx))

	err = bus.Publish(ctx, "case-1", events.CaseStepStatus{
		BaseEvent: events.BaseEvent{
			ID:        "evt-1",
			Type:      events.CaseStepStatusEvent,
			Timestamp: time.Now().UTC(),
		},
		CaseID:                   "case-1",
		WorkflowID:               "wf-1",
		StepID:                   "s1",
		StepName:                 "Collect documents",
		Status:                   models.StepCompleted,
		NotifyBeforeDeadlineDays: 2,
	})
	require.NoError(t, err)

	select {
	case stepStatus := <-received:
		assert.Equal(t, "case-1", stepStatus.CaseID)
		assert.Equal(t, models.StepCompleted, stepStatus.Status)
		assert.Equal(t, 2, stepStatus.NotifyBeforeDeadlineDays)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the event")
	}
}

func TestWatermillEventBus_UnhandledEventTypesAreAcked(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	t.Cleanup(cancel)

	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for workflow events; publishing must not
	// block or error.
	err := bus.Publish(ctx, "wf-1", events.WorkflowCreated{
		BaseEvent:    events.BaseEvent{ID: "evt-2", Type: events.WorkflowCreatedEvent},
		WorkflowID:   "wf-1",
		WorkflowName: "Design review",
	})
	assert.NoError(t, err)
}

type stubPublisher struct {
	closeErr error
	closed   bool
}

func (p *stubPublisher) Publish(string, ...*message.Message) error { return nil }

func (p *stubPublisher) Close() error {
	p.closed = true

	return p.closeErr
}

type stubSubscriber struct {
	closed bool
}

func (s *stubSubscriber) Subscribe(context.Context, string) (<-chan *message.Message, error) {
	return nil, nil
}

func (s *stubSubscriber) Close() error {
	s.closed = true

	return nil
}

func TestWatermillEventBus_CloseClosesSubscriberOnPublisherError(t *testing.T) {
	pub := &stubPublisher{closeErr: errors.New("broker gone")}
	sub := &stubSubscriber{}
	bus := eventbus.NewWatermillEventBus(pub, sub)

	err := bus.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, pub.closeErr)
	assert.True(t, pub.closed)
	assert.True(t, sub.closed)
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
