package receiver

import (
	"golang.org/x/sync/semaphore"
)

// Executor runs blocking jobs off the host cycle.
type Executor interface {
	// TryGo starts work if capacity is available and reports whether it did.
	// It never blocks. done, if not nil, runs after work returns and its
	// capacity has been given back.
	TryGo(work, done func()) bool
}

// Pool is an Executor with a fixed number of worker slots. A cooperative
// receiver holds one slot for as long as its receive is pending, so a pool
// shared by several receivers needs at least one slot per receiver.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a Pool with n worker slots; n < 1 is treated as 1.
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(n))}
}

// TryGo implements Executor.
func (p *Pool) TryGo(work, done func()) bool {
	if !p.sem.TryAcquire(1) {
		return false
	}
	go func() {
		work()
		p.sem.Release(1)
		if done != nil {
			done()
		}
	}()
	return true
}
