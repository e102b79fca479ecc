package goroutine

import (
	"time"

	"github.com/viney-shih/goroutines"
)

// Pool runs fire-and-forget tasks on a bounded set of workers.
// A panicking task is recovered and logged, the worker survives.
type Pool struct {
	pool    *goroutines.Pool
	timeout time.Duration
}

func NewPool(size, queueLength int, timeout time.Duration) *Pool {
	return &Pool{
		pool: goroutines.NewPool(
			size,
			goroutines.WithTaskQueueLength(queueLength),
			goroutines.WithPreAllocWorkers(size/4),
		),
		timeout: timeout,
	}
}

// Go schedules f, failing when no worker frees up within the pool timeout
func (p *Pool) Go(f func(), opts ...Option) error {
	run, _ := Recoverable(f, opts...)
	return p.pool.ScheduleWithTimeout(p.timeout, run)
}

func (p *Pool) Release() {
	p.pool.Release()
}
