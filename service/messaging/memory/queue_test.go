package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID string
}

func TestQueue_PublishConsume(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx := context.Background()

	require.Nil(t, queue.Publish(ctx, &payload{ID: "m1"}))
	require.Nil(t, queue.Publish(ctx, &payload{ID: "m2"}))
	assert.Equal(t, 2, queue.Size())

	message, err := queue.Consume(ctx)
	require.Nil(t, err)
	assert.Equal(t, "m1", message.T().ID)
	assert.Nil(t, message.Ack())
	assert.NotNil(t, message.Ack(), "double ack is rejected")
}

func TestQueue_TryPublish(t *testing.T) {
	queue := NewQueue[payload](Config{QueueBuffer: 1})

	assert.True(t, queue.TryPublish(&payload{ID: "m1"}))
	// Buffer full: the item is dropped instead of blocking the caller.
	assert.False(t, queue.TryPublish(&payload{ID: "m2"}))
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "m1", message.T().ID)
}

func TestQueue_Consume_ContextCancelled(t *testing.T) {
	queue := NewQueue[payload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := queue.Consume(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestQueue_Nack_Retry(t *testing.T) {
	queue := NewQueue[payload](Config{MaxRetries: 1, RetryDelay: time.Millisecond, DeadLetter: true, QueueBuffer: 10})
	ctx := context.Background()

	require.Nil(t, queue.Publish(ctx, &payload{ID: "m1"}))

	message, err := queue.Consume(ctx)
	require.Nil(t, err)
	require.Nil(t, message.Nack(errors.New("transient")))

	consumeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	retried, err := queue.Consume(consumeCtx)
	require.Nil(t, err)
	assert.Equal(t, "m1", retried.T().ID)

	// Retry budget exhausted: the message lands in the dead letter queue.
	require.Nil(t, retried.Nack(errors.New("permanent")))
	assert.Equal(t, 1, queue.DLQSize())
	assert.Equal(t, 0, queue.Size())
}
