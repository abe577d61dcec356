package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardAdmitsOneHolder(t *testing.T) {
	g := NewConcurrencyGuard()

	require.NoError(t, g.TryAcquire())
	assert.True(t, g.Busy())
	assert.ErrorIs(t, g.TryAcquire(), ErrBusy)

	g.Release()
	assert.False(t, g.Busy())
	assert.NoError(t, g.TryAcquire())
}

func TestGuardReleaseWhenIdle(t *testing.T) {
	g := NewConcurrencyGuard()
	g.Release()
	assert.False(t, g.Busy())
}

func TestGuardConcurrentAcquire(t *testing.T) {
	g := NewConcurrencyGuard()
	var admitted atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire() == nil {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
}
