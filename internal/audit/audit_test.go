package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherDropsWhenFull(t *testing.T) {
	pub := NewPublisher(2, testLogger())

	pub.Publish(Event{Type: EventExtractionSucceeded, RequestID: "r1"})
	pub.Publish(Event{Type: EventExtractionSucceeded, RequestID: "r2"})
	// Buffer is full; this must return immediately instead of blocking.
	pub.Publish(Event{Type: EventExtractionSucceeded, RequestID: "r3"})

	assert.Len(t, pub.Inbox(), 2)
}

func TestNilPublisherIsInert(t *testing.T) {
	var pub *Publisher
	pub.Publish(Event{Type: EventDraftValidated})
}

func TestWorkerDrainsIntoStore(t *testing.T) {
	pub := NewPublisher(8, testLogger())
	store := NewInMemoryStore()
	worker := NewWorker(store, pub.Inbox(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	pub.Publish(Event{Type: EventExtractionSucceeded, RequestID: "r1"})
	pub.Publish(Event{Type: EventPolicyCommitted, RequestID: "r1", PolicyID: "p1", Warnings: 1})

	require.Eventually(t, func() bool {
		events, err := store.List(context.Background())
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	events, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EventExtractionSucceeded, events[0].Type)
	assert.Equal(t, EventPolicyCommitted, events[1].Type)
	assert.Equal(t, "p1", events[1].PolicyID)
}

// failStore rejects every append so the worker's skip path is observable.
type failStore struct{ calls atomic.Int32 }

func (s *failStore) Append(context.Context, Event) error {
	s.calls.Add(1)
	return errors.New("disk full")
}

func (s *failStore) List(context.Context) ([]Event, error) { return nil, nil }

func TestWorkerSkipsFailedAppends(t *testing.T) {
	pub := NewPublisher(8, testLogger())
	store := &failStore{}
	worker := NewWorker(store, pub.Inbox(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	pub.Publish(Event{Type: EventExtractionFailed})
	pub.Publish(Event{Type: EventDraftValidated})

	require.Eventually(t, func() bool { return store.calls.Load() >= 2 }, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
