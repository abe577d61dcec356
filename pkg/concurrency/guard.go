package concurrency

import (
	"errors"
	"sync"
)

var ErrBusy = errors.New("An upload is already in progress")

// ConcurrencyGuard admits one holder at a time. Acquire and Release may be
// called from different goroutines.
type ConcurrencyGuard struct {
	mu     sync.Mutex
	isBusy bool
}

func NewConcurrencyGuard() *ConcurrencyGuard {
	return &ConcurrencyGuard{}
}

// TryAcquire marks the guard busy, or returns ErrBusy if it already is.
func (g *ConcurrencyGuard) TryAcquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.isBusy {
		return ErrBusy
	}
	g.isBusy = true
	return nil
}

// Release frees the guard. Releasing an idle guard is a no-op.
func (g *ConcurrencyGuard) Release() {
	g.mu.Lock()
	g.isBusy = false
	g.mu.Unlock()
}

func (g *ConcurrencyGuard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isBusy
}
