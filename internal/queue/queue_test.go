package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_ExecutesEveryTaskOnce(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[uuid.UUID]int)

	pool := NewPool(4, 64, func(_ context.Context, task Task) error {
		mu.Lock()
		seen[task.RecruiterID]++
		mu.Unlock()
		return nil
	})
	pool.Start(context.Background())

	ids := make([]uuid.UUID, 20)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, pool.Enqueue(context.Background(), Task{RecruiterID: ids[i]}))
	}
	pool.Stop()

	require.Len(t, seen, len(ids))
	for _, id := range ids {
		assert.Equal(t, 1, seen[id])
	}
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 4, func(context.Context, Task) error { return nil })
	pool.Start(context.Background())
	pool.Stop()

	err := pool.Enqueue(context.Background(), Task{RecruiterID: uuid.New()})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestPool_EnqueueFullBuffer(t *testing.T) {
	// No workers started, so the buffer never drains.
	pool := NewPool(1, 2, func(context.Context, Task) error { return nil })

	require.NoError(t, pool.Enqueue(context.Background(), Task{RecruiterID: uuid.New()}))
	require.NoError(t, pool.Enqueue(context.Background(), Task{RecruiterID: uuid.New()}))

	err := pool.Enqueue(context.Background(), Task{RecruiterID: uuid.New()})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestPool_FailingTaskDoesNotStopWorkers(t *testing.T) {
	var mu sync.Mutex
	var succeeded int

	pool := NewPool(1, 8, func(_ context.Context, task Task) error {
		if task.RecruiterID == uuid.Nil {
			return errors.New("boom")
		}
		mu.Lock()
		succeeded++
		mu.Unlock()
		return nil
	})
	pool.Start(context.Background())

	require.NoError(t, pool.Enqueue(context.Background(), Task{RecruiterID: uuid.Nil}))
	require.NoError(t, pool.Enqueue(context.Background(), Task{RecruiterID: uuid.New()}))
	pool.Stop()

	assert.Equal(t, 1, succeeded)
}

func TestPool_StopIsIdempotent(t *testing.T) {
	pool := NewPool(2, 4, func(context.Context, Task) error { return nil })
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()
}
