package worker

import (
	"context"
	"sync"

	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Named jobs report a name for logs
type Named interface {
	Name() string
}

// Pool runs jobs on a fixed set of goroutines
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.ctx.Done():
			return
		}
	}
}

// run processes one job. Jobs see a context that is cancelled on Stop.
func (p *Pool) run(job Job) {
	if err := job.Process(p.ctx); err != nil {
		args := []any{"error", err}
		if n, ok := job.(Named); ok {
			args = append(args, "job", n.Name())
		}
		logger.FromContext(p.ctx).Error(LogMsgWorkerJobFailed, args...)
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full.
// It gives up once the pool is stopped.
func (p *Pool) Enqueue(job Job) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

// TryEnqueue adds a job without blocking and reports whether it was accepted
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Stop cancels running jobs' context and waits for the workers to exit
func (p *Pool) Stop() {
	p.stopOnce.Do(p.cancel)
	p.wg.Wait()
}
