package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	pool := NewPool(2, 8, time.Second, zap.NewNop())
	pool.Start()

	var ran int64
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		ok := pool.Submit("count", func(ctx context.Context) error {
			defer wg.Done()
			atomic.AddInt64(&ran, 1)
			return nil
		})
		assert.True(t, ok)
	}

	wg.Wait()
	pool.Stop()
	assert.Equal(t, int64(5), atomic.LoadInt64(&ran))
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := NewPool(1, 4, time.Second, zap.NewNop())
	pool.Start()
	pool.Stop()

	ok := pool.Submit("late", func(ctx context.Context) error { return nil })
	assert.False(t, ok)
}

func TestPool_FailureDoesNotStopWorkers(t *testing.T) {
	pool := NewPool(1, 4, time.Second, zap.NewNop())
	pool.Start()
	defer pool.Stop()

	done := make(chan struct{})
	assert.True(t, pool.Submit("fails", func(ctx context.Context) error {
		return errors.New("downstream unavailable")
	}))
	assert.True(t, pool.Submit("succeeds", func(ctx context.Context) error {
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task after a failed task never ran")
	}
}

func TestPool_TaskSeesTimeout(t *testing.T) {
	pool := NewPool(1, 4, 50*time.Millisecond, zap.NewNop())
	pool.Start()
	defer pool.Stop()

	expired := make(chan bool, 1)
	assert.True(t, pool.Submit("slow", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			expired <- true
		case <-time.After(2 * time.Second):
			expired <- false
		}
		return ctx.Err()
	}))

	select {
	case ok := <-expired:
		assert.True(t, ok, "task context should expire at the pool timeout")
	case <-time.After(3 * time.Second):
		t.Fatal("task never observed its deadline")
	}
}

func TestPool_StopDrainsQueue(t *testing.T) {
	pool := NewPool(1, 16, time.Second, zap.NewNop())
	pool.Start()

	var ran int64
	for i := 0; i < 10; i++ {
		pool.Submit("drain", func(ctx context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}

	pool.Stop()
	assert.Equal(t, int64(10), atomic.LoadInt64(&ran))
}
