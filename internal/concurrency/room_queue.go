package concurrency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/TriCard_Go/internal/logger"
	"github.com/osse101/TriCard_Go/internal/metrics"
)

// ErrQueueClosed is returned for tasks submitted after Shutdown
var ErrQueueClosed = errors.New("room queue is shut down")

// ErrTaskPanicked wraps a recovered task panic
var ErrTaskPanicked = errors.New("room task panicked")

// Task is one serialized unit of work for a room
type Task func(ctx context.Context) error

// link is one position in a room's chain. done closes once its task has settled.
type link struct {
	done chan struct{}
}

// RoomQueue runs tasks one at a time per room, in submission order.
// Different rooms run in parallel. A failing or panicking task never blocks
// the tasks queued behind it.
type RoomQueue struct {
	mu      sync.Mutex
	tails   map[string]*link
	pending int
	closed  bool
	wg      sync.WaitGroup
}

// NewRoomQueue creates an empty RoomQueue
func NewRoomQueue() *RoomQueue {
	return &RoomQueue{tails: make(map[string]*link)}
}

// Submit appends task to roomID's chain. The returned channel yields the task's
// error (nil on success) exactly once and is then closed.
//
// The task runs with a context that keeps ctx's values but not its cancellation:
// once admitted, a task always runs to completion.
func (q *RoomQueue) Submit(ctx context.Context, roomID string, task Task) <-chan error {
	result := make(chan error, 1)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		result <- ErrQueueClosed
		close(result)
		return result
	}
	prev := q.tails[roomID]
	cur := &link{done: make(chan struct{})}
	q.tails[roomID] = cur
	q.pending++
	q.wg.Add(1)
	q.mu.Unlock()
	metrics.RoomQueueDepth.Inc()

	taskCtx := context.WithoutCancel(ctx)
	go func() {
		defer q.wg.Done()
		if prev != nil {
			<-prev.done
		}

		err := q.run(taskCtx, roomID, task)
		result <- err
		close(result)

		q.mu.Lock()
		close(cur.done)
		if q.tails[roomID] == cur {
			delete(q.tails, roomID)
		}
		q.pending--
		q.mu.Unlock()
		metrics.RoomQueueDepth.Dec()
	}()

	return result
}

// Do submits task and waits for it. If ctx ends first Do returns ctx.Err()
// while the task still runs to completion in the background.
func (q *RoomQueue) Do(ctx context.Context, roomID string, task Task) error {
	select {
	case err := <-q.Submit(ctx, roomID, task):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *RoomQueue) run(ctx context.Context, roomID string, task Task) (err error) {
	log := logger.FromContext(ctx).With(logger.AttrKeyRoomID, roomID)
	start := time.Now()

	defer func() {
		metrics.RoomTaskDuration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			log.Error(LogMsgRoomTaskPanicked, "panic", r)
		}
	}()

	if err = task(ctx); err != nil {
		log.Debug(LogMsgRoomTaskFailed, "error", err)
	}
	return err
}

// Pending returns how many tasks are queued or running across all rooms
func (q *RoomQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// ActiveRooms returns how many rooms currently hold a chain
func (q *RoomQueue) ActiveRooms() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tails)
}

// Shutdown stops accepting tasks and waits for every admitted task to settle
func (q *RoomQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.FromContext(ctx).Info(LogMsgRoomQueueDrained)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
