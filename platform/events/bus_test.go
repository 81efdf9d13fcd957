package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"estate_crm_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.event" }

func TestPublishSyncRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var calls int32
	for i := 0; i < 3; i++ {
		bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}))
	}

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("PublishSync() error = %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("handlers called = %d, want 3", got)
	}
}

func TestPublishSyncReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	first := errors.New("first failure")
	var after int32

	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		return first
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		atomic.AddInt32(&after, 1)
		return errors.New("second failure")
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, first) {
		t.Errorf("PublishSync() error = %v, want %v", err, first)
	}
	if atomic.LoadInt32(&after) != 1 {
		t.Error("later handlers should still run after an earlier failure")
	}
}

func TestPublishAsyncHandlersFinishBeforeDrain(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var calls int32
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, e Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	bus.Drain()

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("handlers called = %d, want 2", got)
	}
}

func TestPublishIgnoresUnsubscribedEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	bus.Drain()

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Errorf("PublishSync() with no handlers error = %v, want nil", err)
	}
}
