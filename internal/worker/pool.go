package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultWorkers     = 4
	DefaultQueueSize   = 64
	DefaultTaskTimeout = 10 * time.Second
)

// Task is one fire-and-forget side effect.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pool runs best-effort side effects (receipt email, delivery auto-dispatch,
// dispute forwarding) off the webhook request path. Failures are logged, never
// propagated: the parent event's outcome does not depend on them.
type Pool struct {
	workers int
	timeout time.Duration
	tasks   chan Task
	logger  *zap.Logger
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewPool creates a bounded side-effect pool
func NewPool(workers, queueSize int, taskTimeout time.Duration, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if taskTimeout <= 0 {
		taskTimeout = DefaultTaskTimeout
	}

	return &Pool{
		workers: workers,
		timeout: taskTimeout,
		tasks:   make(chan Task, queueSize),
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Start launches the workers
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	p.running = true

	p.logger.Info("Starting side-effect workers", zap.Int("workers", p.workers))

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop drains the queue and waits for in-flight tasks
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("Side-effect workers stopped")
}

// Submit enqueues a task without blocking. Returns false when the pool is
// stopped or the queue is full; callers log the drop and move on.
func (p *Pool) Submit(name string, fn func(ctx context.Context) error) bool {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()
	if !running {
		return false
	}

	select {
	case p.tasks <- Task{Name: name, Run: fn}:
		return true
	default:
		p.logger.Warn("Side-effect queue full, dropping task", zap.String("task", name))
		return false
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			// Drain what is already queued before exiting
			for {
				select {
				case task := <-p.tasks:
					p.run(id, task)
				default:
					return
				}
			}
		case task := <-p.tasks:
			p.run(id, task)
		}
	}
}

func (p *Pool) run(id int, task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	if err := task.Run(ctx); err != nil {
		p.logger.Warn("Side-effect task failed",
			zap.String("task", task.Name),
			zap.Int("worker", id),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}

	p.logger.Debug("Side-effect task done",
		zap.String("task", task.Name),
		zap.Int("worker", id),
		zap.Duration("elapsed", time.Since(start)))
}
