package concurrency

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SameKeySharesMutex(t *testing.T) {
	lm := NewLockManager()

	assert.Same(t, lm.GetLock("alice"), lm.GetLock("alice"))
	assert.NotSame(t, lm.GetLock("alice"), lm.GetLock("bob"))
}

func TestLockManager_WithLockSerializesKey(t *testing.T) {
	lm := NewLockManager()
	var (
		wg      sync.WaitGroup
		balance int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("alice", func() error {
				current := balance
				balance = current + 1
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, balance)

	boom := errors.New("boom")
	assert.ErrorIs(t, lm.WithLock("alice", func() error { return boom }), boom)
	assert.True(t, lm.GetLock("alice").TryLock())
}
