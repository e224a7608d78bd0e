package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewEventBusWithSize(1, 8)

	var mu sync.Mutex
	var got []interface{}
	bus.Subscribe(PostDeleted, func(payload interface{}) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, payload)
	})

	bus.Publish(PostDeleted, 7)
	bus.Publish(PostCreated, "ignored")
	bus.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []interface{}{7}, got)
}

func TestShutdownIsIdempotent(t *testing.T) {
	bus := NewEventBus()
	bus.Shutdown()
	assert.NotPanics(t, bus.Shutdown)
}
