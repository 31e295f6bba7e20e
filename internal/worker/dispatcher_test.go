package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadtrackhq/leadtrack-api/pkg/event"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
	"github.com/leadtrackhq/leadtrack-api/pkg/messaging"
)

type fakeBroker struct {
	mu        sync.Mutex
	published map[string][]interface{}
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][]interface{})}
}

func (b *fakeBroker) Publish(_ context.Context, channel string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published[channel] = append(b.published[channel], message)
	return nil
}

func (b *fakeBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, nil
}

func (b *fakeBroker) Close() error { return nil }

func (b *fakeBroker) messages(channel string) []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]interface{}, len(b.published[channel]))
	copy(out, b.published[channel])
	return out
}

func TestDispatcherPublishesChanges(t *testing.T) {
	broker := newFakeBroker()
	d := NewDispatcher(broker, logger.NewLogger(nil), nil, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Start(ctx)

	d.Enqueue(event.Change{
		ID:        uuid.New(),
		Entity:    "lead",
		Operation: event.OpCreate,
		EntityID:  uuid.NewString(),
		Version:   1,
	})

	require.Eventually(t, func() bool {
		return len(broker.messages("leadtrack.events.lead")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	msgs := broker.messages("leadtrack.events.lead")
	msg, ok := msgs[0].(messaging.Message)
	require.True(t, ok)
	assert.Equal(t, "lead_CREATE", msg.Type)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := NewDispatcher(nil, logger.NewLogger(nil), nil, 1)

	// The run loop is not draining, so only the first event fits.
	d.Enqueue(event.Change{Entity: "lead", Operation: event.OpCreate, Version: 1})
	d.Enqueue(event.Change{Entity: "lead", Operation: event.OpUpdate, Version: 2})

	assert.Len(t, d.events, 1)
}
