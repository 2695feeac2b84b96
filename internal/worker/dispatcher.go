package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of best-effort background work.
type Task func(ctx context.Context) error

type job struct {
	name string
	run  Task
}

// Dispatcher runs submitted tasks on a fixed worker pool. Delivery is
// at-most-once: tasks are never retried and a full queue drops new ones.
type Dispatcher struct {
	workers int
	timeout time.Duration
	logger  *slog.Logger

	jobs    chan job
	mu      sync.RWMutex
	stopped bool
	started bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewDispatcher constructs dispatcher with bounded queue.
func NewDispatcher(workers, queueSize int, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		workers: workers,
		timeout: timeout,
		logger:  logger,
		jobs:    make(chan job, queueSize),
	}
}

// Start launches workers. Tasks outlive ctx cancellation until Stop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Submit queues task without blocking. It reports false when the task was dropped.
func (d *Dispatcher) Submit(name string, task func(ctx context.Context) error) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.logger.Warn("task dropped, dispatcher stopped", slog.String("task", name))
		return false
	}

	select {
	case d.jobs <- job{name: name, run: task}:
		return true
	default:
		d.logger.Warn("task dropped, queue full", slog.String("task", name), slog.Int("capacity", cap(d.jobs)))
		return false
	}
}

// Stop refuses new tasks and waits for queued ones. When ctx expires first the
// running tasks are cancelled and ctx.Err is returned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.jobs)
	started := d.started
	d.mu.Unlock()

	if !started {
		for j := range d.jobs {
			d.logger.Warn("task discarded, dispatcher never started", slog.String("task", j.name))
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

// Pending returns number of queued tasks.
func (d *Dispatcher) Pending() int {
	return len(d.jobs)
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for j := range d.jobs {
		d.run(ctx, j)
	}
}

func (d *Dispatcher) run(ctx context.Context, j job) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("task panicked", slog.String("task", j.name), slog.Any("panic", r))
		}
	}()

	start := time.Now()
	if err := j.run(ctx); err != nil {
		d.logger.Error("task failed",
			slog.String("task", j.name),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Debug("task done", slog.String("task", j.name), slog.Duration("elapsed", time.Since(start)))
}
