package concurrency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/osse101/TriCard_Go/internal/testing/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomQueue_RunsInSubmissionOrder(t *testing.T) {
	q := NewRoomQueue()
	ctx := context.Background()

	var mu sync.Mutex
	var order []int
	var results []<-chan error
	for i := 0; i < 50; i++ {
		i := i
		results = append(results, q.Submit(ctx, "room-1", func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
	}
	for _, r := range results {
		require.NoError(t, <-r)
	}

	require.Len(t, order, 50)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestRoomQueue_AtMostOneTaskPerRoom(t *testing.T) {
	q := NewRoomQueue()
	ctx := context.Background()

	var inFlight, maxInFlight int32
	var results []<-chan error
	for i := 0; i < 20; i++ {
		results = append(results, q.Submit(ctx, "room-1", func(ctx context.Context) error {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				m := atomic.LoadInt32(&maxInFlight)
				if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil
		}))
	}
	for _, r := range results {
		<-r
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}

func TestRoomQueue_FailureDoesNotBlockChain(t *testing.T) {
	q := NewRoomQueue()
	ctx := context.Background()
	boom := errors.New("save failed")

	first := q.Submit(ctx, "room-1", func(ctx context.Context) error { return boom })
	second := q.Submit(ctx, "room-1", func(ctx context.Context) error { panic("bad task") })
	third := q.Submit(ctx, "room-1", func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, <-first, boom)
	assert.ErrorIs(t, <-second, ErrTaskPanicked)
	assert.NoError(t, <-third)
}

func TestRoomQueue_RoomsRunInParallel(t *testing.T) {
	q := NewRoomQueue()
	ctx := context.Background()

	release := make(chan struct{})
	blocked := q.Submit(ctx, "room-a", func(ctx context.Context) error {
		<-release
		return nil
	})

	select {
	case err := <-q.Submit(ctx, "room-b", func(ctx context.Context) error { return nil }):
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("room-b waited on room-a")
	}

	close(release)
	assert.NoError(t, <-blocked)
}

func TestRoomQueue_IdleChainsAreDropped(t *testing.T) {
	q := NewRoomQueue()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		<-q.Submit(ctx, "room-1", func(ctx context.Context) error { return nil })
	}

	assert.Equal(t, 0, q.ActiveRooms())
	assert.Equal(t, 0, q.Pending())
}

func TestRoomQueue_TaskIgnoresCallerCancellation(t *testing.T) {
	q := NewRoomQueue()
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	finished := make(chan error, 1)
	release := make(chan struct{})

	go func() {
		finished <- q.Do(ctx, "room-1", func(taskCtx context.Context) error {
			close(started)
			<-release
			return taskCtx.Err()
		})
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-finished, context.Canceled)

	// The task keeps running and sees a live context
	result := q.Submit(context.Background(), "room-1", func(ctx context.Context) error { return nil })
	close(release)
	assert.NoError(t, <-result)
}

func TestRoomQueue_Shutdown(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		q := NewRoomQueue()
		ctx := context.Background()

		var ran int32
		for i := 0; i < 10; i++ {
			q.Submit(ctx, "room-1", func(ctx context.Context) error {
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&ran, 1)
				return nil
			})
		}

		require.NoError(t, q.Shutdown(ctx))
		assert.Equal(t, int32(10), atomic.LoadInt32(&ran))

		err := <-q.Submit(ctx, "room-1", func(ctx context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrQueueClosed)
	})
}

func TestRoomQueue_ShutdownTimeout(t *testing.T) {
	q := NewRoomQueue()
	release := make(chan struct{})
	defer close(release)

	q.Submit(context.Background(), "room-1", func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Shutdown(ctx), context.DeadlineExceeded)
}

func TestLockManager_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("member-1"), lm.GetLock("member-1"))
	assert.NotSame(t, lm.GetLock("member-1"), lm.GetLock("member-2"))

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("member-1", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}
