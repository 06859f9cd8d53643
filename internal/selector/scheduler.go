package selector

import "context"

// Scheduler runs fn on the goroutine that owns the controller.
type Scheduler interface {
	Schedule(fn func())
}

type SchedulerFunc func(fn func())

func (f SchedulerFunc) Schedule(fn func()) { f(fn) }

// Queue is a channel-backed event loop for callers without a UI loop.
type Queue struct {
	ch chan func()
}

func NewQueue() *Queue {
	return &Queue{ch: make(chan func(), 64)}
}

func (q *Queue) Schedule(fn func()) {
	q.ch <- fn
}

// RunNext waits for one scheduled callback and runs it.
func (q *Queue) RunNext(ctx context.Context) error {
	select {
	case fn := <-q.ch:
		fn()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len reports how many callbacks are waiting.
func (q *Queue) Len() int {
	return len(q.ch)
}
