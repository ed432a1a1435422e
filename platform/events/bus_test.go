package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var calls []int
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		calls = append(calls, 1)
		return nil
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		calls = append(calls, 2)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "test.event"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("expected handlers in order, got %v", calls)
	}
}

func TestPublishSyncReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(nil)
	wantErr := errors.New("handler failed")

	var secondCalled bool
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		return wantErr
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		secondCalled = true
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "test.event"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if secondCalled {
		t.Fatalf("expected dispatch to stop at the first error")
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var wg sync.WaitGroup
	wg.Add(2)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		wg.Done()
		return nil
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "test.event"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("handlers did not run within timeout")
	}
}

func TestPublishIgnoresUnsubscribedEvents(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var called bool
	bus.Subscribe("other.event", HandlerFunc(func(ctx context.Context, event Event) error {
		called = true
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "test.event"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("handler for a different event must not run")
	}
}
